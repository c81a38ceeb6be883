// Package service provides the business logic layer for Rush Hour.
//
// The service package implements:
//   - Multi-session play on any loadable board
//   - Move validation against the legal moves of the current board
//   - Bulk moves with a per-request cap
//   - Paginated move history
//   - Solving a session's current position or a named board
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// BoardManager loads, lists and saves board definitions.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine and solver packages. Each session owns its own board, so sessions
// never share state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	boardMgr, _ := boards.NewManager("gameboards", gameboards.FS)
//	gameService := service.NewGameService(sessionMgr, boardMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "Rushhour6x6_1")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, "A", 1, false)
//
// Session Management:
//
// Sessions are identified by short random IDs. They track creation time,
// last access time and the full move history, which is what gets persisted
// and replayed on restart.
package service
