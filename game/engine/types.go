package engine

// Axis is the single line a vehicle occupies and may move along
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

const (
	// Board size limits
	MinBoardSize = 1
	MaxBoardSize = 255

	// TargetName is the vehicle that has to reach the exit
	TargetName = "X"
)

// String returns the single-letter orientation used by board definition files
func (a Axis) String() string {
	if a == Vertical {
		return "V"
	}
	return "H"
}

// ParseAxis converts "H"/"V" (case-insensitive) into an Axis
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "H", "h":
		return Horizontal, true
	case "V", "v":
		return Vertical, true
	}
	return Horizontal, false
}

// VehicleSegment is one occupied cell of a vehicle.
// Remaining counts the cells after this one toward the trailing end, so the
// anchor (top/left) cell carries length-1 and the trailing cell carries 0.
type VehicleSegment struct {
	ID        VehicleID `json:"id"`
	Axis      Axis      `json:"axis"`
	Remaining uint8     `json:"remaining"`
}

// Tile is a single grid cell. The zero value is an empty tile.
type Tile struct {
	Segment VehicleSegment
}

// Empty reports whether no vehicle occupies the tile
func (t Tile) Empty() bool {
	return t.Segment.ID == 0
}

// Move slides one vehicle along its axis. Offset is signed: positive moves
// toward increasing row/column index.
type Move struct {
	Vehicle VehicleID `json:"vehicle"`
	Offset  int       `json:"offset"`
}

// Inverse returns the move that undoes m
func (m Move) Inverse() Move {
	return Move{Vehicle: m.Vehicle, Offset: -m.Offset}
}

// Vehicle describes a placed vehicle by its anchor cell (0-indexed)
type Vehicle struct {
	ID     VehicleID `json:"id"`
	Name   string    `json:"name"`
	Axis   Axis      `json:"axis"`
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Length int       `json:"length"`
}

// Snapshot is a JSON friendly view of a board
type Snapshot struct {
	Size      int        `json:"size"`
	Grid      [][]string `json:"grid"`
	Target    string     `json:"target"`
	Won       bool       `json:"won"`
	MoveCount int        `json:"move_count"`
	Moves     []MoveInfo `json:"moves"`
	Rendered  string     `json:"rendered,omitempty"`
}

// MoveInfo is the exported form of a move: vehicle name plus signed offset
type MoveInfo struct {
	Car  string `json:"car"`
	Move int    `json:"move"`
}

// Info converts m into its exported form
func (m Move) Info() MoveInfo {
	return MoveInfo{Car: m.Vehicle.String(), Move: m.Offset}
}
