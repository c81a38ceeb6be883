// Package solver finds shortest solutions with breadth-first search.
//
// Each generation is fully materialized before the next one starts. Every
// child board is a clone of its parent with one move applied; its grid hash
// goes into an Archive and only unseen boards join the next frontier. The
// first child that satisfies IsWon ends the search, and its history is the
// solution.
//
//	sol, err := solver.Solve(ctx, board, 0, solver.WithProgress(func(p solver.Progress) {
//		log.Printf("depth=%d frontier=%d archive=%d", p.Depth, p.FrontierSize, p.ArchiveSize)
//	}))
//	var nse *solver.NoSolutionError
//	if errors.As(err, &nse) {
//		log.Printf("unsolvable: %v", nse)
//	}
//
// Solutions are exported as CSV with a "car,move" header.
package solver
