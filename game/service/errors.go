package service

import "errors"

var ErrIllegalMove = errors.New("illegal move")

// MaxBulkMoves caps how many moves one BulkMove call applies
const MaxBulkMoves = 100
