// Package boards provides board definition management for the Rush Hour solver.
//
// The boards package handles:
//   - Loading board definitions from CSV files
//   - Serving the built-in boards compiled into the binary
//   - Default board selection
//   - Board discovery, listing and saving
//
// Board Format:
//
// A board file starts with a header line followed by one record per vehicle:
//
//	car,orientation,col,row,length
//	X,H,2,3,2
//	A,V,4,2,3
//
// Coordinates are 1-indexed and name the vehicle's top/left cell. The grid
// size is not stored in the file: it is the first number in the file name,
// so Rushhour9x9_4.csv is a 9x9 board.
//
// Usage:
//
//	manager, err := boards.NewManager("gameboards", gameboards.FS)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	def, err := manager.LoadBoard("Rushhour6x6_1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	board, err := def.Build()
//
// Validation:
//
// A board is accepted when every record parses and every vehicle fits on the
// grid without overlapping another. Nothing else (solvability, a target on
// the exit row) is checked.
package boards
