// Package mcp exposes Spilled Mushrooms to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a request against the REST
// API (see package api) and the JSON response is rendered as readable text.
// The game itself never runs inside this process.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: day, locations, selectable critters and valid moves
//   - valid_moves: every legal (critter_index, location_index) pair
//   - place_critter: resolve one turn
//   - bulk_place: resolve up to engine.MaxBulkMoves turns in order
//   - reset_game: replay the same roster from day 1
//   - turn_history: paginated turn reports
//   - collection_summary: mushrooms gathered per critter and per type
//   - list_configs: available rosters with their mushroom totals
//   - game_instructions, describe_critter: rules reference
//
// Placement tools take an optional intent argument. It is ignored by the
// server and exists so agents state their reasoning before acting.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := client.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
