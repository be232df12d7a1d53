package grid

import (
	"fmt"
	"strings"
)

// Render draws g with column labels (C00, C01, ...) and row labels
// (R00, R01, ...). When reveal is true, cells in highlighted are wrapped
// in brackets; otherwise every cell is drawn the same way.
func Render(g *Grid, highlighted map[Coord]struct{}, reveal bool) string {
	n := g.Size()
	var b strings.Builder

	b.WriteString("   ")
	for c := 0; c < n; c++ {
		if c > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "C%02d", c)
	}

	for r := 0; r < n; r++ {
		fmt.Fprintf(&b, "\nR%02d ", r)
		for c := 0; c < n; c++ {
			ch := g.cells[r][c]
			if _, hit := highlighted[Coord{Row: r, Col: c}]; hit && reveal {
				fmt.Fprintf(&b, "[%c] ", ch)
			} else {
				fmt.Fprintf(&b, " %c  ", ch)
			}
		}
	}
	return b.String()
}
