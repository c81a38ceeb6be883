package engine

import "strings"

// String draws the board in a box. The right border of the target's row is
// replaced with "=>" to mark the exit.
func (b *Board) String() string {
	var sb strings.Builder
	border := strings.Repeat("───", b.size)

	sb.WriteString("┌" + border + "┐\n")
	for r := 0; r < b.size; r++ {
		sb.WriteString("│")
		exitRow := false
		for c := 0; c < b.size; c++ {
			t := b.grid[b.index(r, c)]
			sb.WriteString(" ")
			if t.Empty() {
				sb.WriteString("  ")
				continue
			}
			name := t.Segment.ID.String()
			if len(name) == 1 {
				name += " "
			}
			sb.WriteString(name)
			if t.Segment.ID == TargetID {
				exitRow = true
			}
		}
		if exitRow {
			sb.WriteString(" =>\n")
		} else {
			sb.WriteString("│\n")
		}
	}
	sb.WriteString("└" + border + "┘")
	return sb.String()
}
