package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// newTestBoard builds a board from 1-indexed placements
func newTestBoard(t *testing.T, size int, vehicles ...Placement) *Board {
	t.Helper()
	def := &Definition{Name: "test", Size: size, Vehicles: vehicles}
	board, err := def.Build()
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}
	return board
}

var target = Placement{Name: "X", Axis: Horizontal, Row: 3, Col: 1, Length: 2}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{0, true},
		{-1, true},
		{1, false},
		{6, false},
		{255, false},
		{256, true},
	}

	for _, tt := range tests {
		board, err := NewBoard(tt.size)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("size %d: expected ErrInvalidSize, got %v", tt.size, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("size %d: unexpected error: %v", tt.size, err)
		}
		if board.Size() != tt.size {
			t.Errorf("Expected size %d, got %d", tt.size, board.Size())
		}
		if board.MoveCount() != 0 {
			t.Errorf("Expected no history, got %d moves", board.MoveCount())
		}
	}
}

func TestBoard_Get(t *testing.T) {
	board := newTestBoard(t, 6, target)

	tile, err := board.Get(2, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tile.Segment.ID != TargetID || tile.Segment.Remaining != 1 {
		t.Errorf("Expected anchor of X with remaining 1, got %+v", tile.Segment)
	}

	tile, _ = board.Get(2, 1)
	if tile.Segment.Remaining != 0 {
		t.Errorf("Expected trailing segment remaining 0, got %d", tile.Segment.Remaining)
	}

	tile, _ = board.Get(0, 0)
	if !tile.Empty() {
		t.Error("Expected empty tile")
	}

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {6, 0}, {0, 6}} {
		if _, err := board.Get(pos[0], pos[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%d,%d): expected ErrOutOfBounds, got %v", pos[0], pos[1], err)
		}
	}
}

func TestBoard_PlaceVehicle(t *testing.T) {
	a := MustEncodeVehicleID("A")

	t.Run("vertical segments descend", func(t *testing.T) {
		board, _ := NewBoard(6)
		if err := board.PlaceVehicle(a, Vertical, 1, 3, 3); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for i, want := range []uint8{2, 1, 0} {
			tile, _ := board.Get(1+i, 3)
			if tile.Segment.ID != a || tile.Segment.Axis != Vertical || tile.Segment.Remaining != want {
				t.Errorf("row %d: expected A/V/%d, got %+v", 1+i, want, tile.Segment)
			}
		}
	})

	t.Run("out of bounds leaves board untouched", func(t *testing.T) {
		board, _ := NewBoard(6)
		before := board.Hash()
		err := board.PlaceVehicle(a, Horizontal, 0, 4, 3)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Expected ErrOutOfBounds, got %v", err)
		}
		if board.Hash() != before {
			t.Error("Expected board to be unchanged after failed placement")
		}
	})

	t.Run("overlap leaves board untouched", func(t *testing.T) {
		board := newTestBoard(t, 6, target)
		before := board.Hash()
		err := board.PlaceVehicle(a, Vertical, 0, 1, 3)
		if !errors.Is(err, ErrCellOccupied) {
			t.Fatalf("Expected ErrCellOccupied, got %v", err)
		}
		if board.Hash() != before {
			t.Error("Expected board to be unchanged after failed placement")
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		board, _ := NewBoard(6)
		if err := board.PlaceVehicle(0, Horizontal, 0, 0, 2); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Expected ErrInvalidID, got %v", err)
		}
	})
}

func TestBoard_IsWon(t *testing.T) {
	tests := []struct {
		name   string
		col    int
		length int
		want   bool
	}{
		{"start", 1, 2, false},
		{"one short", 4, 2, false},
		{"at exit", 5, 2, true},
		{"long target at the right edge", 4, 3, false},
		{"long target one short", 3, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t, 6, Placement{Name: "X", Axis: Horizontal, Row: 3, Col: tt.col, Length: tt.length})
			won, err := board.IsWon()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if won != tt.want {
				t.Errorf("Expected won=%v, got %v", tt.want, won)
			}
		})
	}

	t.Run("missing target", func(t *testing.T) {
		board := newTestBoard(t, 6, Placement{Name: "A", Axis: Horizontal, Row: 3, Col: 1, Length: 2})
		if _, err := board.IsWon(); !errors.Is(err, ErrMissingVehicle) {
			t.Errorf("Expected ErrMissingVehicle, got %v", err)
		}
	})
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("target to exit", func(t *testing.T) {
		board := newTestBoard(t, 6, target)
		if err := board.ApplyMove(Move{Vehicle: TargetID, Offset: 4}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		won, _ := board.IsWon()
		if !won {
			t.Errorf("Expected win after X+4\n%s", board)
		}
		tile, _ := board.Get(2, 4)
		if tile.Segment.Remaining != 1 {
			t.Errorf("Expected anchor at column 4, got %+v", tile.Segment)
		}
		for col := 0; col < 4; col++ {
			if tile, _ := board.Get(2, col); !tile.Empty() {
				t.Errorf("Expected column %d to be empty", col)
			}
		}
	})

	t.Run("overlapping shift", func(t *testing.T) {
		board := newTestBoard(t, 6, target)
		if err := board.ApplyMove(Move{Vehicle: TargetID, Offset: 1}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := []string{".", "X", "X", ".", ".", "."}
		if got := board.Snapshot().Grid[2]; !reflect.DeepEqual(got, want) {
			t.Errorf("Expected row %v, got %v", want, got)
		}
	})

	t.Run("vertical upward", func(t *testing.T) {
		board := newTestBoard(t, 6, target, Placement{Name: "A", Axis: Vertical, Row: 3, Col: 6, Length: 3})
		a := MustEncodeVehicleID("A")
		if err := board.ApplyMove(Move{Vehicle: a, Offset: -2}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for row, want := range []uint8{2, 1, 0} {
			tile, _ := board.Get(row, 5)
			if tile.Segment.ID != a || tile.Segment.Remaining != want {
				t.Errorf("row %d: expected A remaining %d, got %+v", row, want, tile.Segment)
			}
		}
		for row := 3; row < 6; row++ {
			if tile, _ := board.Get(row, 5); !tile.Empty() {
				t.Errorf("Expected row %d to be empty", row)
			}
		}
	})

	t.Run("missing vehicle", func(t *testing.T) {
		board := newTestBoard(t, 6, target)
		err := board.ApplyMove(Move{Vehicle: MustEncodeVehicleID("Q"), Offset: 1})
		if !errors.Is(err, ErrMissingVehicle) {
			t.Errorf("Expected ErrMissingVehicle, got %v", err)
		}
		if board.MoveCount() != 0 {
			t.Error("Expected no history after failed move")
		}
	})

	t.Run("out of bounds does not mutate", func(t *testing.T) {
		board := newTestBoard(t, 6, target)
		before := board.Hash()
		for _, offset := range []int{-1, 5} {
			err := board.ApplyMove(Move{Vehicle: TargetID, Offset: offset})
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("offset %d: expected ErrOutOfBounds, got %v", offset, err)
			}
		}
		if board.Hash() != before || board.MoveCount() != 0 {
			t.Error("Expected board to be unchanged after failed moves")
		}
	})
}

func TestBoard_MoveThenInverseRestoresGrid(t *testing.T) {
	board := newTestBoard(t, 6,
		target,
		Placement{Name: "A", Axis: Vertical, Row: 1, Col: 4, Length: 3},
		Placement{Name: "B", Axis: Horizontal, Row: 6, Col: 2, Length: 3},
	)
	start := board.Snapshot().Grid
	startHash := board.Hash()

	moves, err := board.PossibleMoves()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, m := range moves {
		next := board.Clone()
		if err := next.ApplyMove(m); err != nil {
			t.Fatalf("Failed to apply %v: %v", m, err)
		}
		if err := next.ApplyMove(m.Inverse()); err != nil {
			t.Fatalf("Failed to apply inverse of %v: %v", m, err)
		}
		if next.Hash() != startHash {
			t.Errorf("Expected hash restored after %s%+d", m.Vehicle, m.Offset)
		}
		if !reflect.DeepEqual(next.Snapshot().Grid, start) {
			t.Errorf("Expected grid restored after %s%+d", m.Vehicle, m.Offset)
		}
		if next.MoveCount() != 2 {
			t.Errorf("Expected 2 moves in history, got %d", next.MoveCount())
		}
	}
}

func TestBoard_Hash(t *testing.T) {
	board := newTestBoard(t, 6, target)

	if board.Hash() != board.Hash() {
		t.Error("Expected hash to be stable")
	}
	clone := board.Clone()
	if clone.Hash() != board.Hash() {
		t.Error("Expected clone to hash equal")
	}

	_ = clone.ApplyMove(Move{Vehicle: TargetID, Offset: 1})
	if clone.Hash() == board.Hash() {
		t.Error("Expected hash to change after a move")
	}

	other := newTestBoard(t, 6, Placement{Name: "X", Axis: Horizontal, Row: 3, Col: 2, Length: 2})
	if other.Hash() != clone.Hash() {
		t.Error("Expected equal grids with different histories to hash equal")
	}

	vertical := newTestBoard(t, 6, Placement{Name: "X", Axis: Vertical, Row: 3, Col: 1, Length: 2})
	if vertical.Hash() == board.Hash() {
		t.Error("Expected axis to affect the hash")
	}
}

func TestBoard_CloneSharesHistory(t *testing.T) {
	board := newTestBoard(t, 6, target)
	_ = board.ApplyMove(Move{Vehicle: TargetID, Offset: 1})

	clone := board.Clone()
	if clone.History() != board.History() {
		t.Error("Expected clone to share the history node")
	}

	_ = clone.ApplyMove(Move{Vehicle: TargetID, Offset: 2})
	if board.MoveCount() != 1 {
		t.Errorf("Expected original to keep 1 move, got %d", board.MoveCount())
	}
	if clone.MoveCount() != 2 {
		t.Errorf("Expected clone to have 2 moves, got %d", clone.MoveCount())
	}
	if clone.History().Prev() != board.History() {
		t.Error("Expected clone history to extend the original chain")
	}
	if tile, _ := board.Get(2, 3); !tile.Empty() {
		t.Error("Expected original grid unaffected by clone move")
	}
}

func TestBoard_ExportHistory(t *testing.T) {
	board := newTestBoard(t, 6, target, Placement{Name: "A", Axis: Vertical, Row: 1, Col: 6, Length: 2})
	a := MustEncodeVehicleID("A")

	played := []Move{
		{Vehicle: TargetID, Offset: 2},
		{Vehicle: a, Offset: 3},
		{Vehicle: TargetID, Offset: -1},
	}
	for _, m := range played {
		if err := board.ApplyMove(m); err != nil {
			t.Fatalf("Failed to apply %+v: %v", m, err)
		}
	}

	if got := board.ExportHistory(); !reflect.DeepEqual(got, played) {
		t.Errorf("Expected %v, got %v", played, got)
	}
	if got := board.Clone().ExportHistory(); !reflect.DeepEqual(got, played) {
		t.Errorf("Expected clone to export %v, got %v", played, got)
	}

	fresh := newTestBoard(t, 6, target)
	if got := fresh.ExportHistory(); len(got) != 0 {
		t.Errorf("Expected empty history, got %v", got)
	}
}

func TestBoard_Vehicles(t *testing.T) {
	board := newTestBoard(t, 6,
		Placement{Name: "A", Axis: Vertical, Row: 1, Col: 4, Length: 3},
		target,
	)
	want := []Vehicle{
		{ID: MustEncodeVehicleID("A"), Name: "A", Axis: Vertical, Row: 0, Col: 3, Length: 3},
		{ID: TargetID, Name: "X", Axis: Horizontal, Row: 2, Col: 0, Length: 2},
	}
	if got := board.Vehicles(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestBoard_String(t *testing.T) {
	board := newTestBoard(t, 3, Placement{Name: "X", Axis: Horizontal, Row: 2, Col: 1, Length: 2})
	lines := strings.Split(board.String(), "\n")

	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d:\n%s", len(lines), board)
	}
	if lines[0] != "┌"+strings.Repeat("───", 3)+"┐" {
		t.Errorf("Unexpected top border %q", lines[0])
	}
	if lines[2] != "│ X  X     =>" {
		t.Errorf("Expected exit marker on target row, got %q", lines[2])
	}
	if lines[1] != "│         │" {
		t.Errorf("Unexpected empty row %q", lines[1])
	}
}

func TestDefinition_RoundTrip(t *testing.T) {
	def := &Definition{
		Name: "roundtrip",
		Size: 6,
		Vehicles: []Placement{
			{Name: "A", Axis: Horizontal, Row: 1, Col: 1, Length: 2},
			{Name: "BC", Axis: Vertical, Row: 1, Col: 6, Length: 3},
			target,
		},
	}
	board, err := def.Build()
	if err != nil {
		t.Fatalf("Failed to build: %v", err)
	}

	got := DefinitionFromBoard("roundtrip", board)
	if !reflect.DeepEqual(got, def) {
		t.Errorf("Expected %+v, got %+v", def, got)
	}
}

func TestDefinition_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want error
	}{
		{"bad size", Definition{Size: 0}, ErrInvalidSize},
		{"bad name", Definition{Size: 6, Vehicles: []Placement{{Name: "x", Length: 2, Row: 1, Col: 1}}}, ErrInvalidID},
		{"off board", Definition{Size: 6, Vehicles: []Placement{{Name: "A", Length: 2, Row: 1, Col: 6}}}, ErrOutOfBounds},
		{"overlap", Definition{Size: 6, Vehicles: []Placement{target, {Name: "A", Axis: Vertical, Length: 2, Row: 2, Col: 2}}}, ErrCellOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.def.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPlacement_JSONAxis(t *testing.T) {
	data, err := json.Marshal(Placement{Name: "A", Axis: Vertical, Row: 1, Col: 1, Length: 2})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if !strings.Contains(string(data), `"axis":"V"`) {
		t.Errorf("Expected axis encoded as V, got %s", data)
	}

	var p Placement
	if err := json.Unmarshal([]byte(`{"name":"B","axis":"h","row":2,"col":3,"length":3}`), &p); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if p.Axis != Horizontal || p.Length != 3 {
		t.Errorf("Unexpected placement %+v", p)
	}

	if err := json.Unmarshal([]byte(`{"axis":"D"}`), &p); err == nil {
		t.Error("Expected error for invalid axis")
	}
}
