// Package runlog records finished games.
//
// A Transcript tees console output into logs/game_run_<timestamp>.txt with
// a start header and an end footer. A SQLiteStore keeps one row per finished
// run in the runs table and one row per critter in run_critters, and an
// Archiver plugs the store into the session manager so every finished
// session is written once.
package runlog
