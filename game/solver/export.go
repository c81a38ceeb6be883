package solver

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
)

// DefaultSolutionPath is where the CLI writes solutions
const DefaultSolutionPath = "results/solution.csv"

var csvHeader = []string{"car", "move"}

// WriteCSV writes moves oldest first under a "car,move" header
func WriteCSV(w io.Writer, moves []engine.Move) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range moves {
		if err := cw.Write([]string{m.Vehicle.String(), strconv.Itoa(m.Offset)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes moves to path, creating parent directories
func WriteCSVFile(path string, moves []engine.Move) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, moves); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV parses a solution written by WriteCSV
func ReadCSV(r io.Reader) ([]engine.Move, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty solution file")
	}

	moves := make([]engine.Move, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields, got %d", i+2, len(rec))
		}
		id, err := engine.EncodeVehicleID(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		offset, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid move %q", i+2, rec[1])
		}
		moves = append(moves, engine.Move{Vehicle: id, Offset: offset})
	}
	return moves, nil
}
