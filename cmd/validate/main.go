// Command validate checks the board definition CSV files in a directory. It
// checks:
//   - The header line and the field count of every record
//   - Vehicle names, orientations and 1-indexed coordinates
//   - That every vehicle fits on the board and no two vehicles overlap
//   - Exactly one horizontal target vehicle
//   - That no horizontal vehicle sits between the target and the exit
//
// Unlike loading a board, validation reports every problem in a file rather
// than stopping at the first one.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/rushhour/game/boards"
	"github.com/wricardo/mcp-training/rushhour/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages holds informational lines; otherwise it
// accumulates the problems that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

type cell struct{ row, col int }

// validateBoard loads and validates a single board file
func validateBoard(path string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(path),
		Valid:    true,
		Messages: []string{},
	}

	size, err := boards.SizeFromFilename(path)
	if err != nil {
		result.fail("%v", err)
		return result
	}
	if size < engine.MinBoardSize || size > engine.MaxBoardSize {
		result.fail("Board size %d outside %d..%d", size, engine.MinBoardSize, engine.MaxBoardSize)
		return result
	}

	f, err := os.Open(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}
	defer f.Close()

	placements := readPlacements(f, &result)
	checkLayout(size, placements, &result)

	if result.Valid {
		result.Messages = append(result.Messages,
			fmt.Sprintf("✓ Grid: %dx%d", size, size),
			fmt.Sprintf("✓ Vehicles: %d", len(placements)),
		)
	}
	return result
}

// readPlacements parses every record it can, reporting the rest
func readPlacements(r io.Reader, result *ValidationResult) []engine.Placement {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var placements []engine.Placement
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.fail("Line %d: %v", line, err)
			continue
		}

		if line == 1 {
			if strings.Join(rec, ",") != strings.Join(boards.Header, ",") {
				result.fail("Header must be %q, got %q", strings.Join(boards.Header, ","), strings.Join(rec, ","))
			}
			continue
		}

		if len(rec) != len(boards.Header) {
			result.fail("Line %d: expected %d fields, got %d", line, len(boards.Header), len(rec))
			continue
		}

		p := engine.Placement{Name: strings.TrimSpace(rec[0])}
		ok := true
		if _, err := engine.EncodeVehicleID(p.Name); err != nil {
			result.fail("Line %d: %v", line, err)
			ok = false
		}
		axis, axisOK := engine.ParseAxis(strings.TrimSpace(rec[1]))
		if !axisOK {
			result.fail("Line %d: orientation %q must be H or V", line, rec[1])
			ok = false
		}
		p.Axis = axis

		var nums [3]int
		for i, field := range rec[2:] {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				result.fail("Line %d: %s %q is not a number", line, boards.Header[i+2], field)
				ok = false
				continue
			}
			nums[i] = n
		}
		p.Col, p.Row, p.Length = nums[0], nums[1], nums[2]

		if ok {
			placements = append(placements, p)
		}
	}

	if line == 0 {
		result.fail("File is empty")
	}
	return placements
}

// checkLayout places vehicles on a scratch grid to find overlaps, bounds
// problems and target issues
func checkLayout(size int, placements []engine.Placement, result *ValidationResult) {
	occupied := make(map[cell]string)
	names := make(map[string]bool)
	var target *engine.Placement

	for i, p := range placements {
		if names[p.Name] {
			result.fail("Vehicle %s is defined more than once", p.Name)
			continue
		}
		names[p.Name] = true

		if p.Length < 1 {
			result.fail("Vehicle %s has length %d", p.Name, p.Length)
			continue
		}
		if p.Name == engine.TargetName {
			target = &placements[i]
		}

		dr, dc := 0, 1
		if p.Axis == engine.Vertical {
			dr, dc = 1, 0
		}
		for k := 0; k < p.Length; k++ {
			c := cell{p.Row + dr*k, p.Col + dc*k}
			if c.row < 1 || c.row > size || c.col < 1 || c.col > size {
				result.fail("Vehicle %s leaves the board at row %d, col %d", p.Name, c.row, c.col)
				break
			}
			if other, taken := occupied[c]; taken {
				result.fail("Vehicle %s overlaps %s at row %d, col %d", p.Name, other, c.row, c.col)
				break
			}
			occupied[c] = p.Name
		}
	}

	if target == nil {
		result.fail("Missing target vehicle %s", engine.TargetName)
		return
	}
	if target.Axis != engine.Horizontal {
		result.fail("Target vehicle %s must be horizontal to reach the exit", engine.TargetName)
		return
	}

	blocked := false
	seen := make(map[string]bool)
	for col := target.Col + target.Length; col <= size; col++ {
		name, taken := occupied[cell{target.Row, col}]
		if !taken || seen[name] {
			continue
		}
		seen[name] = true
		for _, p := range placements {
			if p.Name == name && p.Axis == engine.Horizontal {
				result.fail("Unsolvable: horizontal vehicle %s blocks the exit row", name)
				blocked = true
			}
		}
	}
	if !blocked && result.Valid {
		result.Messages = append(result.Messages, fmt.Sprintf("✓ Exit row: %d", target.Row))
	}
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "validate Rush Hour board definition files",
		ArgsUsage: "[file.csv ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "board-dir",
				Usage: "directory scanned when no files are given",
				Value: "gameboards",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// run validates each file, printing a concise report and exiting with
// non-zero status if any are invalid
func run(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob(filepath.Join(cmd.String("board-dir"), "*.csv"))
		if err != nil {
			return fmt.Errorf("finding board files: %w", err)
		}
	}

	if !report(os.Stdout, files) {
		return cli.Exit("❌ Some boards have errors", 1)
	}
	return nil
}

func report(w io.Writer, files []string) bool {
	allValid := true
	for _, file := range files {
		result := validateBoard(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Messages {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Fprintln(w, "  ❌ "+msg)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All boards are valid!")
	}
	return allValid
}
