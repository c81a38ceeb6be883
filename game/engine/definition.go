package engine

import (
	"fmt"
	"strings"
)

// Placement is one vehicle record of a board definition. Row and Col are
// 1-indexed and name the anchor (top/left) cell.
type Placement struct {
	Name   string `json:"name"`
	Axis   Axis   `json:"axis"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Length int    `json:"length"`
}

// Definition is everything needed to build the starting board of a puzzle
type Definition struct {
	Name     string      `json:"name"`
	Size     int         `json:"size"`
	Vehicles []Placement `json:"vehicles"`
}

// Build creates a fresh board from the definition
func (d *Definition) Build() (*Board, error) {
	board, err := NewBoard(d.Size)
	if err != nil {
		return nil, fmt.Errorf("board %q: %w", d.Name, err)
	}
	for _, p := range d.Vehicles {
		id, err := EncodeVehicleID(p.Name)
		if err != nil {
			return nil, fmt.Errorf("board %q: %w", d.Name, err)
		}
		if err := board.PlaceVehicle(id, p.Axis, p.Row-1, p.Col-1, p.Length); err != nil {
			return nil, fmt.Errorf("board %q: %w", d.Name, err)
		}
	}
	return board, nil
}

// DefinitionFromBoard captures the current layout of a board as a definition
func DefinitionFromBoard(name string, b *Board) *Definition {
	def := &Definition{Name: name, Size: b.Size()}
	for _, v := range b.Vehicles() {
		def.Vehicles = append(def.Vehicles, Placement{
			Name:   v.Name,
			Axis:   v.Axis,
			Row:    v.Row + 1,
			Col:    v.Col + 1,
			Length: v.Length,
		})
	}
	return def
}

// MarshalText encodes the axis as "H" or "V"
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts "H" or "V" in either case
func (a *Axis) UnmarshalText(text []byte) error {
	axis, ok := ParseAxis(strings.TrimSpace(string(text)))
	if !ok {
		return fmt.Errorf("invalid axis %q (want H or V)", text)
	}
	*a = axis
	return nil
}
