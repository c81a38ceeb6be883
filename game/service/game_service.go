package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, boardName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, vehicle string, offset int, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []engine.MoveInfo, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Solving
	Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error)
	SolveBoard(ctx context.Context, boardName string, opts SolveOptions) (*SolveResult, error)

	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	LoadBoard(ctx context.Context, boardName string) (*engine.Definition, error)
	SaveBoard(ctx context.Context, boardName string, def *engine.Definition) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, def *engine.Definition) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// BoardManager handles board definition loading
type BoardManager interface {
	LoadBoard(name string) (*engine.Definition, error)
	ListBoards() ([]*BoardInfo, error)
	GetDefault() *engine.Definition
	SaveBoard(name string, def *engine.Definition) error
}

// Session represents an active play session
type Session struct {
	ID             string
	Definition     *engine.Definition
	Board          *engine.Board
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// BoardName returns the identifier of the board the session plays
func (s *Session) BoardName() string {
	if s.Definition == nil {
		return ""
	}
	return s.Definition.Name
}

// Reset rebuilds the board from the session's definition, dropping history
func (s *Session) Reset() error {
	board, err := s.Definition.Build()
	if err != nil {
		return fmt.Errorf("failed to rebuild board: %w", err)
	}
	s.Board = board
	return nil
}
