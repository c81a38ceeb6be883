// Command analyze prints quick, human-readable heuristics about the boards in
// a board directory. It summarizes size, vehicle counts and how crowded the
// grid is, lists the vehicles standing between the target and the exit, and
// flags boards that can never be solved because a horizontal vehicle shares
// the target's row in front of it. Unless -no-solve is given each board is
// also solved to report its shortest solution.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/rushhour/game/boards"
	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// Analysis is the summary of one board definition
type Analysis struct {
	Name       string
	Size       int
	Vehicles   int
	Horizontal int
	Vertical   int
	Occupancy  float64
	Moves      int
	Blockers   []string
	// Stuck lists horizontal vehicles in front of the target; any makes the board unsolvable
	Stuck []string

	Solved   bool
	Solution int
	Explored int
	Elapsed  time.Duration
	SolveErr error
}

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "print heuristics about Rush Hour boards",
		ArgsUsage: "[board ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "board-dir",
				Usage: "directory containing board CSV files",
				Value: "gameboards",
			},
			&cli.BoolFlag{
				Name:  "no-solve",
				Usage: "skip solving each board",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "stop searching after this many moves (0 = unlimited)",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("board-dir")
	names := cmd.Args().Slice()
	if len(names) == 0 {
		var err error
		if names, err = boardNames(dir); err != nil {
			return err
		}
	}

	mgr, err := boards.NewManager(dir, nil)
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Printf("\n=== Analyzing %s ===\n", name)
		def, err := mgr.LoadBoard(name)
		if err != nil {
			fmt.Printf("Error loading board: %v\n", err)
			continue
		}

		a, err := analyzeBoard(def)
		if err != nil {
			fmt.Printf("Error analyzing board: %v\n", err)
			continue
		}
		if !cmd.Bool("no-solve") && len(a.Stuck) == 0 {
			solveBoard(ctx, def, cmd.Int("max-depth"), a)
		}
		printAnalysis(os.Stdout, a)
	}
	return nil
}

// boardNames lists the CSV boards in dir, sorted
func boardNames(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(filepath.Base(m), ".csv")
	}
	sort.Strings(names)
	return names, nil
}

func analyzeBoard(def *engine.Definition) (*Analysis, error) {
	board, err := def.Build()
	if err != nil {
		return nil, err
	}

	a := &Analysis{Name: def.Name, Size: def.Size}

	var target *engine.Vehicle
	vehicles := board.Vehicles()
	occupied := 0
	for i, v := range vehicles {
		a.Vehicles++
		occupied += v.Length
		if v.Axis == engine.Horizontal {
			a.Horizontal++
		} else {
			a.Vertical++
		}
		if v.ID == engine.TargetID {
			target = &vehicles[i]
		}
	}
	a.Occupancy = float64(occupied) / float64(def.Size*def.Size)

	if target == nil {
		return nil, fmt.Errorf("%w: %s", engine.ErrMissingVehicle, engine.TargetName)
	}

	moves, err := board.PossibleMoves()
	if err != nil && !errors.Is(err, engine.ErrNoMoves) {
		return nil, err
	}
	a.Moves = len(moves)

	if target.Axis != engine.Horizontal {
		// A vertical target can never reach the exit
		a.Stuck = append(a.Stuck, target.Name)
		return a, nil
	}

	seen := make(map[engine.VehicleID]bool)
	for col := target.Col + target.Length; col < def.Size; col++ {
		tile, err := board.Get(target.Row, col)
		if err != nil {
			return nil, err
		}
		id := tile.Segment.ID
		if tile.Empty() || seen[id] {
			continue
		}
		seen[id] = true
		a.Blockers = append(a.Blockers, id.String())
		if tile.Segment.Axis == engine.Horizontal {
			a.Stuck = append(a.Stuck, id.String())
		}
	}

	return a, nil
}

func solveBoard(ctx context.Context, def *engine.Definition, maxDepth int, a *Analysis) {
	board, err := def.Build()
	if err != nil {
		a.SolveErr = err
		return
	}

	start := time.Now()
	solution, err := solver.Solve(ctx, board, maxDepth)
	a.Elapsed = time.Since(start)
	if err != nil {
		a.SolveErr = err
		return
	}
	a.Solved = true
	a.Solution = solution.Depth
	a.Explored = solution.Explored
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Size, a.Size)
	fmt.Fprintf(w, "Vehicles: %d (%d horizontal, %d vertical)\n", a.Vehicles, a.Horizontal, a.Vertical)
	fmt.Fprintf(w, "Occupancy: %.0f%%\n", a.Occupancy*100)
	fmt.Fprintf(w, "Opening Moves: %d\n", a.Moves)

	if len(a.Blockers) > 0 {
		fmt.Fprintf(w, "Blocking %s: %s\n", engine.TargetName, strings.Join(a.Blockers, ", "))
	} else {
		fmt.Fprintf(w, "✅ Nothing between %s and the exit\n", engine.TargetName)
	}

	if len(a.Stuck) > 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: %s can never clear the exit row, board is unsolvable\n", strings.Join(a.Stuck, ", "))
		return
	}

	switch {
	case a.Solved:
		fmt.Fprintf(w, "✅ Solved in %d moves (%d states, %s)\n", a.Solution, a.Explored, a.Elapsed.Round(time.Millisecond))
	case a.SolveErr != nil:
		fmt.Fprintf(w, "⚠️  WARNING: %v\n", a.SolveErr)
	}
}
