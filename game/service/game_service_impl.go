package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	boards   BoardManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, boards BoardManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		boards:   boards,
	}
}

// CreateSession creates a new play session on the named board, or the default board when name is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, boardName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var def *engine.Definition
	if boardName != "" {
		var err error
		def, err = s.boards.LoadBoard(boardName)
		if err != nil {
			if available := s.boardIDs(); len(available) > 0 {
				return nil, fmt.Errorf("failed to load board '%s' (available boards: %s): %w",
					boardName, strings.Join(available, ", "), err)
			}
			return nil, fmt.Errorf("failed to load board '%s': %w", boardName, err)
		}
	} else {
		def = s.boards.GetDefault()
		if def == nil {
			return nil, fmt.Errorf("no default board available")
		}
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", def)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return newSessionInfo(sess), nil
}

// GetSession retrieves session information. It takes the write lock because
// touching the session updates its access time.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return newSessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move slides one vehicle. The move must be one of the board's possible moves.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, vehicle string, offset int, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		if err := sess.Reset(); err != nil {
			return nil, err
		}
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Board reset to its starting position",
			Timestamp: time.Now(),
		})
	}

	m, err := legalMove(sess.Board, vehicle, offset)
	if err != nil {
		if reset {
			s.persist(sessionID, "reset")
		}
		return nil, err
	}
	if err := sess.Board.ApplyMove(m); err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	info := m.Info()
	events = append(events, moveEvent(info))

	state := newGameState(sess)
	if state.Won {
		events = append(events, victoryEvent(state.MoveCount))
	}

	s.persist(sessionID, "move")

	return &MoveResult{
		Success:   true,
		GameState: state,
		Message:   state.Message,
		Events:    events,
		Move:      &info,
	}, nil
}

// BulkMove applies moves in order and stops at the first one that is not legal
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []engine.MoveInfo, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		if err := sess.Reset(); err != nil {
			return nil, err
		}
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Board reset to its starting position",
			Timestamp: time.Now(),
		})
	}

	if len(moves) > MaxBulkMoves {
		result.Truncated = true
		result.Limit = MaxBulkMoves
		moves = moves[:MaxBulkMoves]
	}

	for i, mi := range moves {
		m, err := legalMove(sess.Board, mi.Car, mi.Move)
		if err != nil {
			result.Success = false
			result.StoppedReason = err.Error()
			result.StoppedOnMove = i + 1
			break
		}
		if err := sess.Board.ApplyMove(m); err != nil {
			return nil, fmt.Errorf("failed to apply move %d: %w", i+1, err)
		}
		result.MovesExecuted++
		result.Events = append(result.Events, moveEvent(m.Info()))
	}

	result.GameState = newGameState(sess)
	result.Won = result.GameState.Won
	if result.Won {
		result.Events = append(result.Events, victoryEvent(result.GameState.MoveCount))
	}

	s.persist(sessionID, "bulk moves")

	return result, nil
}

// Reset rebuilds the session board from its definition
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	if err := sess.Reset(); err != nil {
		return nil, err
	}

	s.persist(sessionID, "reset")

	return newGameState(sess), nil
}

// GetGameState returns the current board of a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return newGameState(sess), nil
}

// GetMoveHistory returns the played moves of a session, paginated
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	played := sess.Board.ExportHistory()
	history := make([]HistoryEntry, len(played))
	for i, m := range played {
		history[i] = HistoryEntry{MoveNumber: i + 1, Car: m.Vehicle.String(), Move: m.Offset}
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []HistoryEntry{}
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Solve searches for the shortest solution from the session's current board.
// The session itself is not modified.
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error) {
	s.mu.RLock()
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("session not found: %w", err)
	}
	board := sess.Board.Clone()
	name := sess.BoardName()
	s.mu.RUnlock()

	result, err := solveBoard(ctx, name, board, opts)
	if err != nil {
		return nil, err
	}
	result.SessionID = sessionID
	return result, nil
}

// SolveBoard searches for the shortest solution of a stored board's starting position
func (s *gameServiceImpl) SolveBoard(ctx context.Context, boardName string, opts SolveOptions) (*SolveResult, error) {
	def, err := s.boards.LoadBoard(boardName)
	if err != nil {
		return nil, fmt.Errorf("failed to load board '%s': %w", boardName, err)
	}
	board, err := def.Build()
	if err != nil {
		return nil, err
	}
	return solveBoard(ctx, def.Name, board, opts)
}

// ListBoards returns all available boards
func (s *gameServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	return s.boards.ListBoards()
}

// LoadBoard loads a board definition by name
func (s *gameServiceImpl) LoadBoard(ctx context.Context, boardName string) (*engine.Definition, error) {
	return s.boards.LoadBoard(boardName)
}

// SaveBoard stores a board definition after checking that it builds
func (s *gameServiceImpl) SaveBoard(ctx context.Context, boardName string, def *engine.Definition) error {
	if _, err := def.Build(); err != nil {
		return err
	}
	return s.boards.SaveBoard(boardName, def)
}

func solveBoard(ctx context.Context, name string, board *engine.Board, opts SolveOptions) (*SolveResult, error) {
	var solverOpts []solver.Option
	if opts.Progress != nil {
		solverOpts = append(solverOpts, solver.WithProgress(opts.Progress))
	}

	started := time.Now()
	sol, err := solver.Solve(ctx, board, opts.MaxDepth, solverOpts...)
	if err != nil {
		return nil, fmt.Errorf("solving board '%s': %w", name, err)
	}

	return &SolveResult{
		BoardName:  name,
		Solved:     true,
		Moves:      sol.Infos(),
		MoveCount:  sol.Depth,
		Explored:   sol.Explored,
		DurationMS: time.Since(started).Milliseconds(),
		Message:    fmt.Sprintf("Solved in %d moves (%d states explored)", sol.Depth, sol.Explored),
	}, nil
}

// legalMove resolves a vehicle name and offset into a move the board allows
func legalMove(board *engine.Board, vehicle string, offset int) (engine.Move, error) {
	name := strings.ToUpper(strings.TrimSpace(vehicle))
	id, err := engine.EncodeVehicleID(name)
	if err != nil {
		return engine.Move{}, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}

	if won, _ := board.IsWon(); won {
		return engine.Move{}, fmt.Errorf("%w: puzzle already solved, reset to play again", ErrIllegalMove)
	}

	moves, err := board.PossibleMoves()
	if errors.Is(err, engine.ErrNoMoves) {
		return engine.Move{}, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	if err != nil {
		return engine.Move{}, err
	}

	want := engine.Move{Vehicle: id, Offset: offset}
	var offsets []int
	for _, m := range moves {
		if m == want {
			return m, nil
		}
		if m.Vehicle == id {
			offsets = append(offsets, m.Offset)
		}
	}

	if len(offsets) == 0 {
		return engine.Move{}, fmt.Errorf("%w: vehicle %s cannot move", ErrIllegalMove, name)
	}
	sort.Ints(offsets)
	return engine.Move{}, fmt.Errorf("%w: %s%+d (legal offsets for %s: %v)", ErrIllegalMove, name, offset, name, offsets)
}

func newGameState(sess *Session) *GameState {
	state := &GameState{
		Snapshot:      sess.Board.Snapshot(),
		BoardName:     sess.BoardName(),
		PossibleMoves: []engine.MoveInfo{},
	}

	if moves, err := sess.Board.PossibleMoves(); err == nil {
		for _, m := range moves {
			state.PossibleMoves = append(state.PossibleMoves, m.Info())
		}
	}

	switch {
	case state.Won:
		state.Message = fmt.Sprintf("Solved! %s reached the exit in %d moves", engine.TargetName, state.MoveCount)
	case len(state.PossibleMoves) == 0:
		state.Message = "No vehicle can move"
	default:
		state.Message = fmt.Sprintf("%d moves played, %d possible", state.MoveCount, len(state.PossibleMoves))
	}
	return state
}

func newSessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		BoardName:      sess.BoardName(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      newGameState(sess),
		Definition:     sess.Definition,
	}
}

func moveEvent(m engine.MoveInfo) GameEvent {
	return GameEvent{
		Type:      "move",
		Message:   fmt.Sprintf("%s moved %+d", m.Car, m.Move),
		Timestamp: time.Now(),
		Car:       m.Car,
		Offset:    m.Move,
	}
}

func victoryEvent(moveCount int) GameEvent {
	return GameEvent{
		Type:      "victory",
		Message:   fmt.Sprintf("%s reached the exit after %d moves", engine.TargetName, moveCount),
		Timestamp: time.Now(),
	}
}

func (s *gameServiceImpl) boardIDs() []string {
	boards, err := s.boards.ListBoards()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(boards))
	for _, b := range boards {
		ids = append(ids, b.BoardID)
	}
	return ids
}

func (s *gameServiceImpl) persist(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}
