package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/wricardo/mcp-training/rushhour/game/boards"
	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/session"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// X needs A out of row 2 before it can reach the exit: two moves
const tinyBoard = `car,orientation,col,row,length
X,H,1,2,2
A,V,3,2,2
`

// A fills column 3, so X can never pass
const stuckBoard = `car,orientation,col,row,length
X,H,1,2,2
A,V,3,1,4
`

func testBoards() fstest.MapFS {
	return fstest.MapFS{
		"Tiny4x4_1.csv":  {Data: []byte(tinyBoard)},
		"Stuck4x4_1.csv": {Data: []byte(stuckBoard)},
	}
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}
}

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	if app.Action == nil {
		t.Error("Expected root action to serve by default")
	}

	want := []string{"list", "show", "solve", "replay", "solve-all", "serve", "mcp"}
	for _, name := range want {
		found := false
		for _, cmd := range app.Commands {
			if cmd.Name == name {
				found = true
				if cmd.Action == nil {
					t.Errorf("Command %s has no action", name)
				}
			}
		}
		if !found {
			t.Errorf("Expected command %s", name)
		}
	}
}

func TestNewApp_FlagsNotShared(t *testing.T) {
	a := newApp()
	b := newApp()
	if len(a.Flags) == 0 {
		t.Fatal("Expected root flags")
	}
	if a.Flags[0] == b.Flags[0] {
		t.Error("Expected each app to get its own flag values")
	}
}

func TestNewBoardManager_MissingDirFallsBack(t *testing.T) {
	mgr, err := newBoardManager(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected fallback to built-in boards, got %v", err)
	}

	def, err := mgr.LoadBoard(boards.DefaultBoardName)
	if err != nil {
		t.Fatalf("Failed to load built-in board: %v", err)
	}
	if def.Size != 6 {
		t.Errorf("Expected size 6, got %d", def.Size)
	}
}

func TestInitializeServices(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, err := initializeServices(ctx, "", t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}

	state, err := gameService.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if state.BoardName != boards.DefaultBoardName {
		t.Errorf("Expected board %s, got %s", boards.DefaultBoardName, state.BoardName)
	}
}

func TestPruneOrphanedSessions(t *testing.T) {
	dir := t.TempDir()
	mgr, err := boards.NewManager("", builtinBoards)
	if err != nil {
		t.Fatal(err)
	}
	persistence, err := session.NewFilePersistence(dir, mgr)
	if err != nil {
		t.Fatal(err)
	}
	sessions := session.NewManagerWithPersistence(persistence)

	def := mgr.GetDefault()
	for _, id := range []string{"keep", "gone"} {
		if _, err := sessions.Create(id, def); err != nil {
			t.Fatalf("Failed to create session %s: %v", id, err)
		}
	}

	if err := os.Remove(filepath.Join(dir, "gone.json")); err != nil {
		t.Fatalf("Failed to remove session file: %v", err)
	}

	if pruned := pruneOrphanedSessions(sessions, persistence); pruned != 1 {
		t.Errorf("Expected 1 pruned session, got %d", pruned)
	}
	if _, err := sessions.Get("gone"); err == nil {
		t.Error("Expected pruned session to be gone from memory")
	}
	if _, err := sessions.Get("keep"); err != nil {
		t.Errorf("Expected kept session to survive: %v", err)
	}
}

func TestRenderBoard(t *testing.T) {
	def := &engine.Definition{
		Name: "tiny",
		Size: 4,
		Vehicles: []engine.Placement{
			{Name: "X", Axis: engine.Horizontal, Row: 2, Col: 1, Length: 2},
		},
	}
	board, err := def.Build()
	if err != nil {
		t.Fatal(err)
	}

	out := renderBoard("tiny", board)
	if !strings.Contains(out, "tiny") {
		t.Error("Expected title in output")
	}
	if strings.Count(out, "=>") != 1 {
		t.Errorf("Expected one exit marker, got:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.Contains(line, "=>") && !strings.Contains(line, "X") {
			t.Errorf("Exit marker should be on the target row, got %q", line)
		}
	}
}

func TestReplaySolution(t *testing.T) {
	mgr, err := boards.NewManager("", builtinBoards)
	if err != nil {
		t.Fatal(err)
	}
	_, board, err := loadBoard(mgr, boards.DefaultBoardName)
	if err != nil {
		t.Fatal(err)
	}

	solution, err := solver.Solve(context.Background(), board, 0)
	if err != nil {
		t.Fatalf("Failed to solve: %v", err)
	}

	var buf bytes.Buffer
	if err := replaySolution(&buf, boards.DefaultBoardName, board.Clone(), solution.Moves); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if !strings.Contains(buf.String(), "reached the exit") {
		t.Errorf("Expected win message, got:\n%s", buf.String())
	}
}

func TestReplaySolution_Rejects(t *testing.T) {
	mgr, err := boards.NewManager("", testBoards())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		moves []engine.Move
		want  string
	}{
		{
			name:  "illegal move",
			moves: []engine.Move{{Vehicle: engine.TargetID, Offset: 2}},
			want:  "not legal",
		},
		{
			name:  "stops short",
			moves: []engine.Move{{Vehicle: engine.MustEncodeVehicleID("A"), Offset: 1}},
			want:  "has not reached the exit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, board, err := loadBoard(mgr, "Tiny4x4_1")
			if err != nil {
				t.Fatal(err)
			}
			err = replaySolution(&bytes.Buffer{}, "Tiny4x4_1", board, tt.moves)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSolveAll(t *testing.T) {
	mgr, err := boards.NewManager("", testBoards())
	if err != nil {
		t.Fatal(err)
	}

	results, err := solveAll(context.Background(), mgr, []string{"Tiny4x4_1", "Stuck4x4_1", "Missing4x4_1"}, 2, 0)
	if err != nil {
		t.Fatalf("Expected per-board errors only, got %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	if results[0].Err != nil || results[0].Moves != 2 {
		t.Errorf("Tiny4x4_1: expected 2 moves, got %d (err %v)", results[0].Moves, results[0].Err)
	}
	if !errors.Is(results[1].Err, solver.ErrNoSolutionFound) {
		t.Errorf("Stuck4x4_1: expected no solution, got %v", results[1].Err)
	}
	if !errors.Is(results[2].Err, boards.ErrBoardNotFound) {
		t.Errorf("Missing4x4_1: expected board not found, got %v", results[2].Err)
	}
}

func TestSolveAll_Canceled(t *testing.T) {
	mgr, err := boards.NewManager("", builtinBoards)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = solveAll(ctx, mgr, []string{boards.DefaultBoardName}, 1, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolveCommand_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Tiny4x4_1.csv"), []byte(tinyBoard), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "results", "tiny.csv")

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	args := []string{"rushhour", "--board-dir", dir, "solve", "--quiet", "--out", out, "Tiny4x4_1"}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected solution file: %v", err)
	}
	defer f.Close()

	moves, err := solver.ReadCSV(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 {
		t.Errorf("Expected 2 moves, got %d", len(moves))
	}
	if !strings.Contains(buf.String(), "=>") {
		t.Errorf("Expected rendered board in output, got:\n%s", buf.String())
	}
}

func TestShowCommand_MissingArgument(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"rushhour", "show"})
	if err == nil || !strings.Contains(err.Error(), "missing board") {
		t.Errorf("Expected missing board error, got %v", err)
	}
}
