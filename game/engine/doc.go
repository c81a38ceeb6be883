// Package engine provides the board model for the Rush Hour sliding-block puzzle.
//
// The engine package implements:
//   - Compact one-byte vehicle identifiers (1 or 2 letters)
//   - A square grid of tiles with vehicle placement
//   - Move generation from every empty cell
//   - Move application with an immutable, shared move history
//   - Content hashing for state deduplication
//
// Core Types:
//
// Board holds the grid and a pointer to the newest HistoryNode. Cloning a
// board copies the grid and shares the history chain, so the cost of a clone
// does not grow with the number of moves already played. Definition
// describes a starting layout with 1-indexed Placements and builds a fresh
// Board from it.
//
// Usage:
//
//	def := &engine.Definition{
//		Name: "example",
//		Size: 6,
//		Vehicles: []engine.Placement{
//			{Name: "X", Axis: engine.Horizontal, Row: 3, Col: 1, Length: 2},
//			{Name: "A", Axis: engine.Vertical, Row: 2, Col: 4, Length: 3},
//		},
//	}
//
//	board, err := def.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	moves, err := board.PossibleMoves()
//	if err == nil {
//		next := board.Clone()
//		_ = next.ApplyMove(moves[0])
//	}
//
// Rules:
//
// Vehicles slide only along their own axis and never pass through one
// another. The puzzle is solved when the target vehicle X reaches the right
// edge of its row.
package engine
