package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
)

func placement(name string, axis engine.Axis, row, col, length int) engine.Placement {
	return engine.Placement{Name: name, Axis: axis, Row: row, Col: col, Length: length}
}

func TestAnalyzeBoard(t *testing.T) {
	def := &engine.Definition{
		Name: "test",
		Size: 6,
		Vehicles: []engine.Placement{
			placement("X", engine.Horizontal, 3, 1, 2),
			placement("A", engine.Vertical, 2, 4, 3),
			placement("B", engine.Vertical, 3, 6, 2),
			placement("C", engine.Horizontal, 6, 1, 3),
		},
	}

	a, err := analyzeBoard(def)
	if err != nil {
		t.Fatalf("analyzeBoard failed: %v", err)
	}

	if a.Vehicles != 4 {
		t.Errorf("Expected 4 vehicles, got %d", a.Vehicles)
	}
	if a.Horizontal != 2 || a.Vertical != 2 {
		t.Errorf("Expected 2 horizontal and 2 vertical, got %d and %d", a.Horizontal, a.Vertical)
	}

	wantOccupancy := 10.0 / 36.0
	if a.Occupancy != wantOccupancy {
		t.Errorf("Expected occupancy %f, got %f", wantOccupancy, a.Occupancy)
	}

	if got := strings.Join(a.Blockers, ","); got != "A,B" {
		t.Errorf("Expected blockers A,B, got %s", got)
	}
	if len(a.Stuck) != 0 {
		t.Errorf("Expected no stuck vehicles, got %v", a.Stuck)
	}
	if a.Moves == 0 {
		t.Error("Expected opening moves")
	}
}

func TestAnalyzeBoard_HorizontalBlocker(t *testing.T) {
	def := &engine.Definition{
		Name: "stuck",
		Size: 6,
		Vehicles: []engine.Placement{
			placement("X", engine.Horizontal, 3, 1, 2),
			placement("H", engine.Horizontal, 3, 4, 2),
		},
	}

	a, err := analyzeBoard(def)
	if err != nil {
		t.Fatalf("analyzeBoard failed: %v", err)
	}
	if len(a.Stuck) != 1 || a.Stuck[0] != "H" {
		t.Errorf("Expected H to be stuck, got %v", a.Stuck)
	}

	var buf bytes.Buffer
	printAnalysis(&buf, a)
	if !strings.Contains(buf.String(), "unsolvable") {
		t.Errorf("Expected unsolvable warning, got:\n%s", buf.String())
	}
}

func TestAnalyzeBoard_MissingTarget(t *testing.T) {
	def := &engine.Definition{
		Name:     "no-target",
		Size:     6,
		Vehicles: []engine.Placement{placement("A", engine.Vertical, 1, 1, 2)},
	}

	if _, err := analyzeBoard(def); err == nil {
		t.Error("Expected error for board without target")
	}
}

func TestSolveBoard(t *testing.T) {
	def := &engine.Definition{
		Name: "one-step",
		Size: 4,
		Vehicles: []engine.Placement{
			placement("X", engine.Horizontal, 2, 1, 2),
			placement("A", engine.Vertical, 2, 3, 2),
		},
	}

	a, err := analyzeBoard(def)
	if err != nil {
		t.Fatal(err)
	}
	solveBoard(context.Background(), def, 0, a)

	if !a.Solved {
		t.Fatalf("Expected board to be solved, got %v", a.SolveErr)
	}
	if a.Solution != 2 {
		t.Errorf("Expected a 2 move solution, got %d", a.Solution)
	}

	var buf bytes.Buffer
	printAnalysis(&buf, a)
	if !strings.Contains(buf.String(), "Solved in 2 moves") {
		t.Errorf("Expected solution line, got:\n%s", buf.String())
	}
}

func TestBoardNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b6x6_1.csv", "a6x6_1.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("car,orientation,col,row,length\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	names, err := boardNames(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(names, ","); got != "a6x6_1,b6x6_1" {
		t.Errorf("Expected a6x6_1,b6x6_1, got %s", got)
	}
}
