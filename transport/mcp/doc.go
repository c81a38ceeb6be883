// Package mcp exposes Rush Hour to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API (see package api) and the JSON response is rendered as text.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - board_state: grid plus legal moves grouped by vehicle
//   - move: one vehicle, signed offset
//   - bulk_move: moves written as "A+2", "X-1"
//   - reset_game, move_history
//   - list_boards
//   - solve: shortest solution for a session or a board
//   - game_instructions
//
// Transport Modes:
//
// The server returned by GetMCPServer can be served over stdio with
// server.ServeStdio, or behind an HTTP endpoint by passing request bodies
// to HandleMessage.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
