package engine

import (
	"fmt"
	"hash/fnv"
)

// Board is a square grid of tiles plus the chain of moves that produced it
type Board struct {
	size    int
	grid    []Tile
	history *HistoryNode
}

// NewBoard allocates an empty size x size board
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidSize, size, MinBoardSize, MaxBoardSize)
	}
	return &Board{
		size: size,
		grid: make([]Tile, size*size),
	}, nil
}

// Size returns the number of rows (and columns)
func (b *Board) Size() int {
	return b.size
}

// MoveCount returns how many moves have been applied since construction
func (b *Board) MoveCount() int {
	return b.history.Len()
}

// History returns the most recent history node, nil for a fresh board
func (b *Board) History() *HistoryNode {
	return b.history
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

// Get returns the tile at the 0-indexed position
func (b *Board) Get(row, col int) (Tile, error) {
	if !b.inBounds(row, col) {
		return Tile{}, fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, row, col, b.size, b.size)
	}
	return b.grid[b.index(row, col)], nil
}

// PlaceVehicle writes a vehicle of the given length starting at its anchor
// (top/left) cell. The board is left untouched when any cell is outside the
// grid or already occupied.
func (b *Board) PlaceVehicle(id VehicleID, axis Axis, row, col, length int) error {
	if _, err := DecodeVehicleID(id); err != nil {
		return err
	}
	if length < 1 || length > MaxBoardSize {
		return fmt.Errorf("%w: vehicle %s length %d", ErrOutOfBounds, id, length)
	}

	dr, dc := axis.step()
	for i := 0; i < length; i++ {
		r, c := row+dr*i, col+dc*i
		if !b.inBounds(r, c) {
			return fmt.Errorf("%w: vehicle %s leaves the board at (%d,%d)", ErrOutOfBounds, id, r, c)
		}
		if t := b.grid[b.index(r, c)]; !t.Empty() {
			return fmt.Errorf("%w: vehicle %s overlaps %s at (%d,%d)", ErrCellOccupied, id, t.Segment.ID, r, c)
		}
	}

	for i := 0; i < length; i++ {
		b.grid[b.index(row+dr*i, col+dc*i)] = Tile{Segment: VehicleSegment{
			ID:        id,
			Axis:      axis,
			Remaining: uint8(length - 1 - i),
		}}
	}
	return nil
}

// findAnchor returns the anchor cell of a vehicle. The anchor carries the
// largest Remaining value and is always the first occurrence in row-major
// order.
func (b *Board) findAnchor(id VehicleID) (row, col int, seg VehicleSegment, ok bool) {
	for i, t := range b.grid {
		if t.Segment.ID == id {
			return i / b.size, i % b.size, t.Segment, true
		}
	}
	return 0, 0, VehicleSegment{}, false
}

// IsWon reports whether the target vehicle's trailing edge sits two cells
// from the right edge of its row. Only a length 2 target can satisfy this;
// longer targets never win.
func (b *Board) IsWon() (bool, error) {
	_, col, _, ok := b.findAnchor(TargetID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingVehicle, TargetName)
	}
	return b.size-col == 2, nil
}

// ApplyMove slides a vehicle by the move's offset and records the move.
// Legality (a clear path) is not checked here; moves are expected to come
// from PossibleMoves.
func (b *Board) ApplyMove(m Move) error {
	row, col, seg, ok := b.findAnchor(m.Vehicle)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingVehicle, m.Vehicle)
	}

	length := int(seg.Remaining) + 1
	dr, dc := seg.Axis.step()
	startR, startC := row+dr*m.Offset, col+dc*m.Offset
	endR, endC := startR+dr*(length-1), startC+dc*(length-1)
	if !b.inBounds(startR, startC) || !b.inBounds(endR, endC) {
		return fmt.Errorf("%w: moving %s by %d", ErrOutOfBounds, m.Vehicle, m.Offset)
	}

	swap := func(i int) {
		from := b.index(row+dr*i, col+dc*i)
		to := b.index(row+dr*(i+m.Offset), col+dc*(i+m.Offset))
		b.grid[from], b.grid[to] = b.grid[to], b.grid[from]
	}
	if m.Offset > 0 {
		for i := length - 1; i >= 0; i-- {
			swap(i)
		}
	} else {
		for i := 0; i < length; i++ {
			swap(i)
		}
	}

	b.history = b.history.Push(m)
	return nil
}

// Clone deep-copies the grid and shares the history chain
func (b *Board) Clone() *Board {
	grid := make([]Tile, len(b.grid))
	copy(grid, b.grid)
	return &Board{size: b.size, grid: grid, history: b.history}
}

// Hash returns a 64-bit FNV-1a digest of the grid contents. History is not
// part of the hash.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, len(b.grid)*3)
	for _, t := range b.grid {
		buf = append(buf, byte(t.Segment.ID), byte(t.Segment.Axis), t.Segment.Remaining)
	}
	h.Write(buf)
	return h.Sum64()
}

// ExportHistory returns every applied move, oldest first
func (b *Board) ExportHistory() []Move {
	return b.history.Moves()
}

// Vehicles lists the placed vehicles in row-major order of their anchors
func (b *Board) Vehicles() []Vehicle {
	var vehicles []Vehicle
	seen := make(map[VehicleID]bool)
	for i, t := range b.grid {
		if t.Empty() || seen[t.Segment.ID] {
			continue
		}
		seen[t.Segment.ID] = true
		vehicles = append(vehicles, Vehicle{
			ID:     t.Segment.ID,
			Name:   t.Segment.ID.String(),
			Axis:   t.Segment.Axis,
			Row:    i / b.size,
			Col:    i % b.size,
			Length: int(t.Segment.Remaining) + 1,
		})
	}
	return vehicles
}

// Snapshot returns a JSON friendly copy of the board
func (b *Board) Snapshot() Snapshot {
	grid := make([][]string, b.size)
	for r := 0; r < b.size; r++ {
		grid[r] = make([]string, b.size)
		for c := 0; c < b.size; c++ {
			t := b.grid[b.index(r, c)]
			if t.Empty() {
				grid[r][c] = "."
			} else {
				grid[r][c] = t.Segment.ID.String()
			}
		}
	}

	won, _ := b.IsWon()
	moves := b.ExportHistory()
	infos := make([]MoveInfo, len(moves))
	for i, m := range moves {
		infos[i] = m.Info()
	}

	return Snapshot{
		Size:      b.size,
		Grid:      grid,
		Target:    TargetName,
		Won:       won,
		MoveCount: len(moves),
		Moves:     infos,
		Rendered:  b.String(),
	}
}

func (a Axis) step() (dr, dc int) {
	if a == Vertical {
		return 1, 0
	}
	return 0, 1
}
