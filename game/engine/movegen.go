package engine

// probe is one outward search direction from an empty cell.
// sign is the offset direction that brings a found vehicle back toward the
// empty cell.
type probe struct {
	dr, dc int
	axis   Axis
	sign   int
}

var probes = [4]probe{
	{dr: 0, dc: 1, axis: Horizontal, sign: -1}, // right
	{dr: 0, dc: -1, axis: Horizontal, sign: 1}, // left
	{dr: 1, dc: 0, axis: Vertical, sign: -1},   // down
	{dr: -1, dc: 0, axis: Vertical, sign: 1},   // up
}

// PossibleMoves lists every legal move on the board.
//
// For each empty cell in row-major order, it walks outward in the four
// directions until it meets a vehicle. A vehicle whose axis matches the
// walking direction can slide into the empty cell, covering every cell in
// between, so it yields one move whose magnitude is the walked distance.
// The same vehicle may show up once per reachable empty cell.
func (b *Board) PossibleMoves() ([]Move, error) {
	var moves []Move
	for i, t := range b.grid {
		if !t.Empty() {
			continue
		}
		row, col := i/b.size, i%b.size
		for _, p := range probes {
			for d := 1; ; d++ {
				r, c := row+p.dr*d, col+p.dc*d
				if !b.inBounds(r, c) {
					break
				}
				found := b.grid[b.index(r, c)]
				if found.Empty() {
					continue
				}
				if found.Segment.Axis == p.axis {
					moves = append(moves, Move{Vehicle: found.Segment.ID, Offset: p.sign * d})
				}
				break
			}
		}
	}
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}
	return moves, nil
}
