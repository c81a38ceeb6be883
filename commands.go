package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/rushhour/game/boards"
	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
	"github.com/wricardo/mcp-training/rushhour/gameboards"
	"golang.org/x/sync/errgroup"
)

var builtinBoards fs.FS = gameboards.FS

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	targetStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// renderBoard draws the grid in a rounded box, marking the exit row with "=>"
func renderBoard(title string, b *engine.Board) string {
	snap := b.Snapshot()

	rows := make([]string, len(snap.Grid))
	for r, row := range snap.Grid {
		var sb strings.Builder
		exit := false
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(" ")
			}
			text := fmt.Sprintf("%-2s", cell)
			if cell == snap.Target {
				exit = true
				text = targetStyle.Render(text)
			}
			sb.WriteString(text)
		}
		if exit {
			sb.WriteString(" =>")
		}
		rows[r] = sb.String()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		boxStyle.Render(strings.Join(rows, "\n")),
	)
}

// loadBoard reads a definition and builds its starting board
func loadBoard(mgr *boards.Manager, name string) (*engine.Definition, *engine.Board, error) {
	def, err := mgr.LoadBoard(name)
	if err != nil {
		return nil, nil, err
	}
	board, err := def.Build()
	if err != nil {
		return nil, nil, err
	}
	return def, board, nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	mgr, err := newBoardManager(cmd.String("board-dir"))
	if err != nil {
		return err
	}

	list, err := mgr.ListBoards()
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	for _, info := range list {
		fmt.Fprintf(w, "%-20s %2dx%-2d %3d vehicles  %s\n", info.BoardID, info.Size, info.Size, info.Vehicles, info.Source)
	}
	return nil
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	name, err := firstArg(cmd, "board")
	if err != nil {
		return err
	}
	mgr, err := newBoardManager(cmd.String("board-dir"))
	if err != nil {
		return err
	}

	def, board, err := loadBoard(mgr, name)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderBoard(fmt.Sprintf("%s (%dx%d, %d vehicles)", def.Name, def.Size, def.Size, len(def.Vehicles)), board))
	return nil
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	name, err := firstArg(cmd, "board")
	if err != nil {
		return err
	}
	mgr, err := newBoardManager(cmd.String("board-dir"))
	if err != nil {
		return err
	}

	def, board, err := loadBoard(mgr, name)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := cmd.Root().Writer
	fmt.Fprintln(w, renderBoard(def.Name, board))

	var opts []solver.Option
	if !cmd.Bool("quiet") {
		opts = append(opts, solver.WithProgress(logProgress(def.Name)))
	}

	start := time.Now()
	solution, err := solver.Solve(ctx, board, cmd.Int("max-depth"), opts...)
	if err != nil {
		return fmt.Errorf("solving %s: %w", def.Name, err)
	}
	log.Printf("%s: solved in %d moves, %d states explored, took %s",
		def.Name, solution.Depth, solution.Explored, time.Since(start).Round(time.Millisecond))

	final := board.Clone()
	for _, m := range solution.Moves {
		if err := final.ApplyMove(m); err != nil {
			return fmt.Errorf("applying solution: %w", err)
		}
	}
	fmt.Fprintln(w, renderBoard(fmt.Sprintf("%s after %d moves", def.Name, solution.Depth), final))
	fmt.Fprintln(w, formatMoves(solution.Moves))

	out := cmd.String("out")
	if err := solver.WriteCSVFile(out, solution.Moves); err != nil {
		return err
	}
	log.Printf("Solution written to %s", out)
	return nil
}

func logProgress(name string) solver.ProgressFunc {
	return func(p solver.Progress) {
		log.Printf("%s: depth=%d frontier=%d archive=%d", name, p.Depth, p.FrontierSize, p.ArchiveSize)
	}
}

func formatMoves(moves []engine.Move) string {
	tokens := make([]string, len(moves))
	for i, m := range moves {
		tokens[i] = fmt.Sprintf("%s%+d", m.Vehicle, m.Offset)
	}
	return strings.Join(tokens, " ")
}

func runReplay(ctx context.Context, cmd *cli.Command) error {
	name, err := firstArg(cmd, "board")
	if err != nil {
		return err
	}
	path := solver.DefaultSolutionPath
	if cmd.Args().Len() > 1 {
		path = cmd.Args().Get(1)
	}

	mgr, err := newBoardManager(cmd.String("board-dir"))
	if err != nil {
		return err
	}
	def, board, err := loadBoard(mgr, name)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	moves, err := solver.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return replaySolution(cmd.Root().Writer, def.Name, board, moves)
}

// replaySolution applies moves in order, drawing the board after each one.
// Every move must be legal and the last one must free the target.
func replaySolution(w io.Writer, name string, board *engine.Board, moves []engine.Move) error {
	fmt.Fprintln(w, renderBoard(name, board))

	for i, m := range moves {
		legal, err := board.PossibleMoves()
		if err != nil && !errors.Is(err, engine.ErrNoMoves) {
			return err
		}
		if !slices.Contains(legal, m) {
			return fmt.Errorf("move %d: %s%+d is not legal", i+1, m.Vehicle, m.Offset)
		}
		if err := board.ApplyMove(m); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		fmt.Fprintln(w, renderBoard(fmt.Sprintf("%d/%d: %s%+d", i+1, len(moves), m.Vehicle, m.Offset), board))
	}

	won, err := board.IsWon()
	if err != nil {
		return err
	}
	if !won {
		return fmt.Errorf("%s: %d moves replayed but %s has not reached the exit", name, len(moves), engine.TargetName)
	}
	fmt.Fprintf(w, "%s reached the exit in %d moves\n", engine.TargetName, len(moves))
	return nil
}

// boardResult is the outcome of solving one board in a batch
type boardResult struct {
	Name     string
	Moves    int
	Explored int
	Duration time.Duration
	Err      error
}

// solveAll solves each named board, at most jobs at a time. A board without a
// solution is reported in its result; only cancellation aborts the batch.
func solveAll(ctx context.Context, mgr *boards.Manager, names []string, jobs, maxDepth int) ([]boardResult, error) {
	results := make([]boardResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	var mu sync.Mutex
	for i, name := range names {
		g.Go(func() error {
			res := boardResult{Name: name}
			start := time.Now()

			_, board, err := loadBoard(mgr, name)
			if err == nil {
				var solution *solver.Solution
				solution, err = solver.Solve(ctx, board, maxDepth)
				if err == nil {
					res.Moves = solution.Depth
					res.Explored = solution.Explored
				}
			}
			res.Duration = time.Since(start)
			res.Err = err

			mu.Lock()
			results[i] = res
			mu.Unlock()

			if errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runSolveAll(ctx context.Context, cmd *cli.Command) error {
	mgr, err := newBoardManager(cmd.String("board-dir"))
	if err != nil {
		return err
	}
	list, err := mgr.ListBoards()
	if err != nil {
		return err
	}

	names := make([]string, len(list))
	for i, info := range list {
		names[i] = info.BoardID
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("Solving %d boards with %d jobs", len(names), cmd.Int("jobs"))
	results, err := solveAll(ctx, mgr, names, cmd.Int("jobs"), cmd.Int("max-depth"))

	w := cmd.Root().Writer
	for _, res := range results {
		if res.Name == "" {
			continue
		}
		if res.Err != nil {
			fmt.Fprintf(w, "%-20s %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(w, "%-20s %3d moves %9d states %8s\n", res.Name, res.Moves, res.Explored, res.Duration.Round(time.Millisecond))
	}
	return err
}
