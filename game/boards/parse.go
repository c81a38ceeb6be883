package boards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/rushhour/game/engine"
)

// Header is the first line of every board definition file
var Header = []string{"car", "orientation", "col", "row", "length"}

var sizePattern = regexp.MustCompile(`\d+`)

// SizeFromFilename returns the first decimal number in the file's base name,
// e.g. 6 for "Rushhour6x6_1.csv"
func SizeFromFilename(filename string) (int, error) {
	match := sizePattern.FindString(filepath.Base(filename))
	if match == "" {
		return 0, fmt.Errorf("%w: no board size in name %q", ErrInvalidBoard, filename)
	}
	size, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("%w: board size %q: %v", ErrInvalidBoard, match, err)
	}
	return size, nil
}

// ParseCSV reads "car,orientation,col,row,length" records after a header line.
// Coordinates are 1-indexed; orientation is H or V.
func ParseCSV(name string, size int, r io.Reader) (*engine.Definition, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	def := &engine.Definition{Name: name, Size: size}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
		}
		line++
		if line == 1 {
			continue
		}

		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidBoard, line, err)
		}
		def.Vehicles = append(def.Vehicles, p)
	}

	if line == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidBoard)
	}
	return def, nil
}

func parseRecord(rec []string) (engine.Placement, error) {
	if len(rec) != len(Header) {
		return engine.Placement{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(rec))
	}

	axis, ok := engine.ParseAxis(strings.TrimSpace(rec[1]))
	if !ok {
		return engine.Placement{}, fmt.Errorf("orientation %q must be H or V", rec[1])
	}

	var nums [3]int
	for i, field := range rec[2:] {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return engine.Placement{}, fmt.Errorf("%s %q is not a number", Header[i+2], field)
		}
		nums[i] = n
	}

	return engine.Placement{
		Name:   strings.TrimSpace(rec[0]),
		Axis:   axis,
		Col:    nums[0],
		Row:    nums[1],
		Length: nums[2],
	}, nil
}

// WriteCSV writes a definition in the format ParseCSV reads
func WriteCSV(w io.Writer, def *engine.Definition) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range def.Vehicles {
		rec := []string{
			p.Name,
			p.Axis.String(),
			strconv.Itoa(p.Col),
			strconv.Itoa(p.Row),
			strconv.Itoa(p.Length),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
