// Package api provides HTTP REST API handlers for Rush Hour play sessions.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session, body {"board": "Rushhour6x6_1"} (optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Board snapshot and legal moves
//   - POST /api/sessions/{id}/move - {"vehicle": "A", "offset": -1, "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": [{"car": "A", "move": 2}], "reset": false}
//   - POST /api/sessions/{id}/reset - Restore the starting layout
//   - GET /api/sessions/{id}/history - Paginated moves (?page=1&limit=20&order=desc)
//
// Solving:
//   - POST /api/sessions/{id}/solve - BFS from the current position, body {"max_depth": 0}
//   - POST /api/boards/{name}/solve - BFS from a board's starting layout
//
// Boards:
//   - GET /api/boards - List built-in and on-disk boards
//   - GET /api/boards/{name} - Board definition
//   - POST /api/boards - Save a board definition
//
// Other:
//   - GET /ws?session={id} - WebSocket updates for a session
//   - GET /health
//
// While a session solve runs, each search generation is pushed to the
// session's WebSocket clients as a "solve_progress" event, followed by a
// "solve_result" event.
//
// Errors are returned as JSON:
//
//	{"error": "illegal move: A+5 (legal offsets for A: [-1 1 2])"}
//
// Unknown sessions and boards map to 404, illegal moves and malformed boards
// to 400, an unsolvable search to 422.
package api
