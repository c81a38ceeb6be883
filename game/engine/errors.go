package engine

import "errors"

var (
	ErrInvalidID      = errors.New("invalid vehicle id")
	ErrInvalidSize    = errors.New("invalid board size")
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
	ErrCellOccupied   = errors.New("cell already occupied")
	ErrMissingVehicle = errors.New("vehicle not on board")
	ErrNoMoves        = errors.New("no legal moves")
)
