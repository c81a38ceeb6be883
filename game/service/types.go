package service

import (
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// GameState is the board snapshot plus what can be done next
type GameState struct {
	engine.Snapshot
	BoardName     string            `json:"board_name"`
	PossibleMoves []engine.MoveInfo `json:"possible_moves"`
	Message       string            `json:"message"`
}

// SessionInfo provides information about a play session
type SessionInfo struct {
	ID             string             `json:"id"`
	BoardName      string             `json:"board_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *GameState         `json:"game_state"`
	Definition     *engine.Definition `json:"definition"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool             `json:"success"`
	GameState *GameState       `json:"game_state"`
	Message   string           `json:"message"`
	Events    []GameEvent      `json:"events,omitempty"`
	Move      *engine.MoveInfo `json:"move,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int         `json:"moves_executed"`
	RequestedMoves int         `json:"requested_moves"`
	Success        bool        `json:"success"`
	GameState      *GameState  `json:"game_state"`
	Events         []GameEvent `json:"events"`
	StoppedReason  string      `json:"stopped_reason,omitempty"`
	StoppedOnMove  int         `json:"stopped_on_move,omitempty"` // 1-based
	Truncated      bool        `json:"truncated,omitempty"`
	Limit          int         `json:"limit,omitempty"`
	Won            bool        `json:"won"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string    `json:"type"` // "move", "reset", "victory"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Car       string    `json:"car,omitempty"`
	Offset    int       `json:"offset,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryEntry is one played move with its 1-based position in the game
type HistoryEntry struct {
	MoveNumber int    `json:"move_number"`
	Car        string `json:"car"`
	Move       int    `json:"move"`
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []HistoryEntry `json:"moves"`
	TotalMoves  int            `json:"total_moves"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// SolveOptions configures a solver run
type SolveOptions struct {
	MaxDepth int `json:"max_depth"` // <= 0 means unlimited
	// Progress, when set, receives one report per search generation
	Progress solver.ProgressFunc `json:"-"`
}

// SolveResult describes the outcome of a solver run
type SolveResult struct {
	BoardName  string            `json:"board_name"`
	SessionID  string            `json:"session_id,omitempty"`
	Solved     bool              `json:"solved"`
	Moves      []engine.MoveInfo `json:"moves"`
	MoveCount  int               `json:"move_count"`
	Explored   int               `json:"explored"`
	DurationMS int64             `json:"duration_ms"`
	Message    string            `json:"message"`
}

// BoardInfo provides information about a board definition
type BoardInfo struct {
	Filename string `json:"filename,omitempty"`
	BoardID  string `json:"board_id"` // The identifier to use for session creation
	Size     int    `json:"size"`
	Vehicles int    `json:"vehicles"`
	Source   string `json:"source"` // "file" or "builtin"
}
