// Package session provides session management for Spilled Mushrooms.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//   - Archiving of finished runs through a RunArchiver
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine, the config it was built from and
// any warnings produced while building it.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs generated from crypto/rand. Lookups are
// case-insensitive.
//
// Usage:
//
//	store, err := runlog.Open("runs.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithArchiver(runlog.NewArchiver(store))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, w := range sess.Warnings {
//		log.Println(w)
//	}
//
// Finished games are archived once, by Archive. The game service calls it
// under its own lock, after moves and from its periodic ArchiveFinished.
// Sessions live in memory only; a restart starts from scratch.
package session
