package main

import (
	"math/rand/v2"
	"strings"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// RandomWalkStrategy picks legal moves at random. It takes a winning target
// move as soon as one is offered and never immediately undoes its last move
// unless that is the only option.
type RandomWalkStrategy struct {
	rng  *rand.Rand
	last *engine.MoveInfo

	// visits counts how often each grid layout has been seen this attempt
	visits map[string]int
}

func NewRandomWalkStrategy(seed uint64) *RandomWalkStrategy {
	return &RandomWalkStrategy{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		visits: make(map[string]int),
	}
}

// Reset forgets the previous attempt
func (s *RandomWalkStrategy) Reset() {
	s.last = nil
	clear(s.visits)
}

// Distinct reports how many different layouts this attempt has visited
func (s *RandomWalkStrategy) Distinct() int {
	return len(s.visits)
}

// NextMove chooses the next move, or false when the board offers none
func (s *RandomWalkStrategy) NextMove(state *service.GameState) (engine.MoveInfo, bool) {
	s.visits[gridKey(state.Grid)]++

	if len(state.PossibleMoves) == 0 {
		return engine.MoveInfo{}, false
	}

	if m, ok := winningMove(state); ok {
		s.last = &m
		return m, true
	}

	candidates := make([]engine.MoveInfo, 0, len(state.PossibleMoves))
	for _, m := range state.PossibleMoves {
		if s.last != nil && m.Car == s.last.Car && m.Move == -s.last.Move {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		candidates = state.PossibleMoves
	}

	m := candidates[s.rng.IntN(len(candidates))]
	s.last = &m
	return m, true
}

// winningMove finds a target move that puts its leading edge on the exit column
func winningMove(state *service.GameState) (engine.MoveInfo, bool) {
	lead := -1
	for _, row := range state.Grid {
		for c, cell := range row {
			if cell == state.Target && c > lead {
				lead = c
			}
		}
		if lead >= 0 {
			break
		}
	}
	if lead < 0 {
		return engine.MoveInfo{}, false
	}

	for _, m := range state.PossibleMoves {
		if m.Car == state.Target && lead+m.Move == len(state.Grid)-1 {
			return m, true
		}
	}
	return engine.MoveInfo{}, false
}

func gridKey(grid [][]string) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.Join(row, ""))
		sb.WriteByte('/')
	}
	return sb.String()
}
