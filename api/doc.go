// Package api provides the HTTP REST API for Spilled Mushrooms.
//
// Endpoints (all JSON, under /api):
//
// Session Management:
//   - POST   /sessions              create a session ({"config_id": "balanced"})
//   - GET    /sessions              list sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET    /sessions/unified      several sessions at once (?sessionIds=a,b or ?configName=x)
//   - GET    /sessions/{id}         session info with state, roster and config warnings
//   - DELETE /sessions/{id}         drop a session
//
// Game Operations:
//   - GET  /sessions/{id}/state      current GameState
//   - GET  /sessions/{id}/moves      placements that are legal right now
//   - POST /sessions/{id}/move       {"critter_index": 0, "location_index": 2, "reset": false}
//   - POST /sessions/{id}/bulk-move  {"moves": [{"critter_index": 1, "location_index": 0}], "reset": false}
//   - POST /sessions/{id}/reset      replay the same setup from day 1
//   - GET  /sessions/{id}/history    turn reports (?page=1&limit=20&order=desc)
//   - GET  /sessions/{id}/summary    per-critter collection summary
//
// Configuration:
//   - GET  /configs          list configs with their mushroom totals
//   - GET  /configs/{name}   one config (extension optional)
//   - POST /configs          validate and save a GameConfig
//
// Plus GET /api/health and the WebSocket endpoint /ws?session=<id>.
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. An illegal placement is 409,
// an unknown session or config is 404, a malformed body or invalid config is
// 400.
//
// Successful moves are pushed to WebSocket clients of the session as a
// state_update followed by a turn_report.
package api
