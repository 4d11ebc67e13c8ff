// Package websocket pushes live Spilled Mushrooms updates to browser clients.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id> and receive two kinds of JSON messages, one per frame:
//
//	{"session_id":"a1b2","event":"state_update","game_state":{...}}
//	{"session_id":"a1b2","event":"turn_report","data":{...}}
//
// Broadcasts are queued on the hub's channel and fanned out by Run, so the
// session map is only mutated by the hub goroutine. Clients that cannot keep
// up are dropped. Incoming frames are read only to keep the ping/pong
// heartbeat alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//	hub.BroadcastToSession(id, state)
package websocket
