package solver

import (
	"errors"
	"fmt"
)

var ErrNoSolutionFound = errors.New("no solution found")

// NoSolutionError describes a search that ended without reaching the exit
type NoSolutionError struct {
	Depth     int  // generations fully expanded
	Explored  int  // distinct states archived
	Exhausted bool // true when every reachable state was visited
}

func (e *NoSolutionError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("%s: all %d reachable states explored (depth %d)", ErrNoSolutionFound, e.Explored, e.Depth)
	}
	return fmt.Sprintf("%s: depth limit %d reached after %d states", ErrNoSolutionFound, e.Depth, e.Explored)
}

// Is lets errors.Is match ErrNoSolutionFound
func (e *NoSolutionError) Is(target error) bool {
	return target == ErrNoSolutionFound
}
