// internal/grid/grid.go
//
// Grid primitives for the word search generator.
// Defines:
//   - Direction: placement orientation (across / down).
//   - Coord: a (row, col) cell address.
//   - PlacedWord: a word, its anchor cell and its direction.
//   - Index: placed words keyed by text.
//   - Grid: square letter matrix, read-only once generation returns.

package grid

import (
	"fmt"
	"strings"
)

// empty marks a cell no word has claimed yet. It only exists during planning.
const empty byte = '.'

// Direction is the orientation a word is written in.
type Direction int

const (
	Across Direction = iota // left to right
	Down                    // top to bottom
)

// String returns "across" or "down".
func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Orthogonal returns the other direction.
func (d Direction) Orthogonal() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// MarshalText encodes the direction as its lowercase name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts "across" or "down" (case-insensitive).
func (d *Direction) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "across":
		*d = Across
	case "down":
		*d = Down
	default:
		return fmt.Errorf("grid: unknown direction %q", string(b))
	}
	return nil
}

// step returns the row/col increments for one letter in direction d.
func (d Direction) step() (dr, dc int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

// Coord addresses a single cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PlacedWord is a word committed to the grid.
// Its letters occupy Len() cells starting at Anchor along Direction.
type PlacedWord struct {
	Text      string    `json:"text"`
	Anchor    Coord     `json:"anchor"`
	Direction Direction `json:"direction"`
}

// Len is the number of cells the word occupies.
func (p PlacedWord) Len() int { return len(p.Text) }

// Cells lists the occupied cells in reading order.
func (p PlacedWord) Cells() []Coord {
	dr, dc := p.Direction.step()
	out := make([]Coord, len(p.Text))
	for i := range out {
		out[i] = Coord{Row: p.Anchor.Row + i*dr, Col: p.Anchor.Col + i*dc}
	}
	return out
}

// Index maps word text to its placement.
type Index map[string]PlacedWord

// Words returns the placed word texts in no particular order.
func (ix Index) Words() []string {
	out := make([]string, 0, len(ix))
	for w := range ix {
		out = append(out, w)
	}
	return out
}

// Grid is a square matrix of uppercase letters.
type Grid struct {
	cells [][]byte
}

// newGrid allocates a size×size grid with every cell empty.
func newGrid(size int) *Grid {
	cells := make([][]byte, size)
	for r := range cells {
		cells[r] = []byte(strings.Repeat(string(empty), size))
	}
	return &Grid{cells: cells}
}

// FromRows builds a grid from equal-length rows. Intended for fixtures
// and replaying stored boards; rows must form a square.
func FromRows(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{cells: make([][]byte, len(rows))}
	for r, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), len(rows))
		}
		g.cells[r] = []byte(strings.ToUpper(row))
	}
	return g, nil
}

// Size is the side length.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c addresses a cell of g.
func (g *Grid) InBounds(c Coord) bool {
	n := len(g.cells)
	return c.Row >= 0 && c.Row < n && c.Col >= 0 && c.Col < n
}

// At returns the letter at (row, col). The caller must stay in bounds.
func (g *Grid) At(row, col int) byte { return g.cells[row][col] }

// Row returns row r as a string.
func (g *Grid) Row(r int) string { return string(g.cells[r]) }

// Rows returns a copy of every row as strings.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.cells))
	for r := range g.cells {
		out[r] = string(g.cells[r])
	}
	return out
}

// Read returns n letters starting at anchor along d, or "" if that
// run leaves the grid.
func (g *Grid) Read(anchor Coord, d Direction, n int) string {
	if !g.fits(anchor, d, n) {
		return ""
	}
	dr, dc := d.step()
	b := make([]byte, n)
	for i := range b {
		b[i] = g.cells[anchor.Row+i*dr][anchor.Col+i*dc]
	}
	return string(b)
}

// fits reports whether n cells from anchor along d stay inside the grid.
func (g *Grid) fits(anchor Coord, d Direction, n int) bool {
	if n <= 0 || !g.InBounds(anchor) {
		return false
	}
	dr, dc := d.step()
	return g.InBounds(Coord{Row: anchor.Row + (n-1)*dr, Col: anchor.Col + (n-1)*dc})
}

// String renders the bare letters, one row per line.
func (g *Grid) String() string { return strings.Join(g.Rows(), "\n") }

// SizeFor returns the side length for a word list: 1.5 × the longest word,
// rounded half up.
func SizeFor(words []string) int {
	longest := 0
	for _, w := range words {
		if len(w) > longest {
			longest = len(w)
		}
	}
	return (3*longest + 1) / 2
}
