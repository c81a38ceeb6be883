package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
)

// State is the lifecycle of a Solver
type State int

const (
	Ready State = iota
	Expanding
	Solved
	DepthExhausted
	Aborted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Expanding:
		return "expanding"
	case Solved:
		return "solved"
	case DepthExhausted:
		return "depth_exhausted"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Progress is reported once per generation, before it is expanded
type Progress struct {
	Depth        int `json:"depth"`
	FrontierSize int `json:"frontier_size"`
	ArchiveSize  int `json:"archive_size"`
}

// ProgressFunc receives search progress
type ProgressFunc func(Progress)

// Solution is a shortest move sequence from the start board to the exit
type Solution struct {
	Moves    []engine.Move `json:"moves"`
	Depth    int           `json:"depth"`
	Explored int           `json:"explored"`
}

// Infos returns the moves in exported form
func (s *Solution) Infos() []engine.MoveInfo {
	infos := make([]engine.MoveInfo, len(s.Moves))
	for i, m := range s.Moves {
		infos[i] = m.Info()
	}
	return infos
}

// Option configures a Solver
type Option func(*Solver)

// WithProgress registers a progress observer
func WithProgress(fn ProgressFunc) Option {
	return func(s *Solver) {
		s.onProgress = fn
	}
}

// Solver runs a breadth-first search from one start board.
// A Solver is single use and not safe for concurrent use.
type Solver struct {
	start      *engine.Board
	state      State
	onProgress ProgressFunc
}

// New creates a solver for start. The start board is never mutated.
func New(start *engine.Board, opts ...Option) *Solver {
	s := &Solver{start: start, state: Ready}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns where the solver is in its lifecycle
func (s *Solver) State() State {
	return s.state
}

// Solve searches generation by generation until a board with the target at
// the exit is produced, the frontier empties or maxDepth generations have
// been expanded. maxDepth <= 0 means no limit. Moves in the returned
// solution are relative to the start board's own history.
func (s *Solver) Solve(ctx context.Context, maxDepth int) (*Solution, error) {
	won, err := s.start.IsWon()
	if err != nil {
		return nil, err
	}

	base := s.start.MoveCount()
	archive := NewArchive()
	archive.AddIfAbsent(s.start.Hash())

	if won {
		s.state = Solved
		return &Solution{Moves: []engine.Move{}, Depth: 0, Explored: archive.Len()}, nil
	}

	s.state = Expanding
	frontier := []*engine.Board{s.start}
	depth := 0

	for len(frontier) > 0 && (maxDepth <= 0 || depth < maxDepth) {
		if err := ctx.Err(); err != nil {
			s.state = Aborted
			return nil, err
		}
		if s.onProgress != nil {
			s.onProgress(Progress{Depth: depth, FrontierSize: len(frontier), ArchiveSize: archive.Len()})
		}

		var next []*engine.Board
		for _, board := range frontier {
			moves, err := board.PossibleMoves()
			if errors.Is(err, engine.ErrNoMoves) {
				continue
			}
			if err != nil {
				s.state = Aborted
				return nil, err
			}

			for _, m := range moves {
				child := board.Clone()
				if err := child.ApplyMove(m); err != nil {
					s.state = Aborted
					return nil, fmt.Errorf("applying generated move %s%+d: %w", m.Vehicle, m.Offset, err)
				}
				won, err := child.IsWon()
				if err != nil {
					s.state = Aborted
					return nil, err
				}
				if won {
					s.state = Solved
					path := child.ExportHistory()[base:]
					return &Solution{Moves: path, Depth: len(path), Explored: archive.Len()}, nil
				}
				if archive.AddIfAbsent(child.Hash()) {
					next = append(next, child)
				}
			}
		}

		frontier = next
		depth++
	}

	s.state = DepthExhausted
	return nil, &NoSolutionError{
		Depth:     depth,
		Explored:  archive.Len(),
		Exhausted: len(frontier) == 0,
	}
}

// Solve is a convenience wrapper around New(start).Solve
func Solve(ctx context.Context, start *engine.Board, maxDepth int, opts ...Option) (*Solution, error) {
	return New(start, opts...).Solve(ctx, maxDepth)
}
