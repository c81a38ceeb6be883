// Package websocket pushes live board updates and solver progress to
// browser clients.
//
// The package uses a hub-and-spoke model where a central Hub owns all
// connections. Each client connection gets a read goroutine and a write
// goroutine; the Hub's Run loop is the only code that touches the
// session-to-client map.
//
// Message Protocol:
//
// Outgoing messages are JSON objects, one per frame:
//
//	{"session_id": "ab12", "event": "state_update", "state": {...}}
//	{"session_id": "ab12", "event": "solve_progress", "data": {"depth": 3, "frontier_size": 41, "archive_size": 97}}
//	{"session_id": "ab12", "event": "solve_result", "data": {...}}
//
// Incoming messages are read and discarded.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Broadcasts never block the caller. When the hub's queue is full the
// message is dropped and logged; a client whose own buffer is full is
// disconnected.
package websocket
