// internal/grid/planner.go
//
// Placement planner. Places words longest first:
//   1. The first word is centred.
//   2. Later words try to cross an already placed word of the other
//      orientation on a shared letter; legal candidates are shuffled and the
//      first one wins.
//   3. Otherwise the grid is scanned row-major for the first legal anchor.
//   4. Otherwise the word is dropped and reported in Result.Dropped.
//
// All randomness (candidate shuffle, filler letters) comes from the *rand.Rand
// passed in, so a fixed seed reproduces the same grid.

package grid

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Result is the output of Generate.
type Result struct {
	Grid    *Grid
	Index   Index
	Order   []string // placed words in placement order
	Dropped []string // words no legal position was found for, in processing order
}

// candidate is an anchor/direction pair under consideration for a word.
type candidate struct {
	at  Coord
	dir Direction
}

// Generate builds a filled grid holding as many of words as can be placed.
// Every word must be distinct, non-empty, uppercase A–Z and have an entry in
// dirs. Words that cannot be placed are listed in Result.Dropped; that is not
// an error.
func Generate(words []string, dirs map[string]Direction, rng *rand.Rand) (*Result, error) {
	if err := validate(words, dirs, rng); err != nil {
		return nil, err
	}

	order := slices.Clone(words)
	slices.SortStableFunc(order, func(a, b string) int { return len(b) - len(a) })

	p := &planner{
		grid:  newGrid(SizeFor(order)),
		index: make(Index, len(order)),
		rng:   rng,
	}
	res := &Result{Grid: p.grid, Index: p.index}

	for _, w := range order {
		if !p.place(w, dirs[w]) {
			res.Dropped = append(res.Dropped, w)
		}
	}

	res.Order = p.order
	fill(p.grid, rng)
	return res, nil
}

// validate fails fast on inputs that would leave a half-built grid.
func validate(words []string, dirs map[string]Direction, rng *rand.Rand) error {
	if rng == nil {
		return ErrNilRand
	}
	if len(words) == 0 {
		return ErrNoWords
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			return ErrEmptyWord
		}
		for i := 0; i < len(w); i++ {
			if w[i] < 'A' || w[i] > 'Z' {
				return fmt.Errorf("%w: %q", ErrInvalidWord, w)
			}
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateWord, w)
		}
		seen[w] = struct{}{}
		if _, ok := dirs[w]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingDirection, w)
		}
	}
	return nil
}

// planner carries the grid under construction.
type planner struct {
	grid  *Grid
	index Index
	order []string // placed words in placement order; map iteration is not stable
	rng   *rand.Rand
}

// place commits w if any strategy finds a legal spot.
func (p *planner) place(w string, dir Direction) bool {
	if len(p.order) == 0 {
		at := centre(p.grid.Size(), len(w), dir)
		if p.legal(w, at, dir) {
			p.commit(w, at, dir)
			return true
		}
	} else {
		cands := p.overlaps(w, dir)
		p.rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
		for _, c := range cands {
			if p.legal(w, c.at, c.dir) {
				p.commit(w, c.at, c.dir)
				return true
			}
		}
	}

	if at, ok := p.scan(w, dir); ok {
		p.commit(w, at, dir)
		return true
	}
	return false
}

// centre anchors a word of length n in the middle of the grid.
func centre(size, n int, dir Direction) Coord {
	if dir == Down {
		return Coord{Row: (size - n) / 2, Col: size / 2}
	}
	return Coord{Row: size / 2, Col: (size - n) / 2}
}

// overlaps lists legal anchors that make w cross a placed word on a shared
// letter. A placed word only donates candidates in its orthogonal direction,
// and only when that is the direction w was assigned.
func (p *planner) overlaps(w string, dir Direction) []candidate {
	var out []candidate
	for _, placedText := range p.order {
		pw := p.index[placedText]
		if pw.Direction.Orthogonal() != dir {
			continue
		}
		for i := 0; i < len(w); i++ {
			for j := 0; j < len(pw.Text); j++ {
				if w[i] != pw.Text[j] {
					continue
				}
				var at Coord
				if pw.Direction == Across {
					at = Coord{Row: pw.Anchor.Row - i, Col: pw.Anchor.Col + j}
				} else {
					at = Coord{Row: pw.Anchor.Row + j, Col: pw.Anchor.Col - i}
				}
				if p.legal(w, at, dir) {
					out = append(out, candidate{at: at, dir: dir})
				}
			}
		}
	}
	return out
}

// scan returns the first legal anchor for w in row-major order.
func (p *planner) scan(w string, dir Direction) (Coord, bool) {
	n := p.grid.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			at := Coord{Row: r, Col: c}
			if p.legal(w, at, dir) {
				return at, true
			}
		}
	}
	return Coord{}, false
}

// legal reports whether w fits at (at, dir) with no conflicting letter.
func (p *planner) legal(w string, at Coord, dir Direction) bool {
	if !p.grid.fits(at, dir, len(w)) {
		return false
	}
	dr, dc := dir.step()
	for i := 0; i < len(w); i++ {
		cur := p.grid.cells[at.Row+i*dr][at.Col+i*dc]
		if cur != empty && cur != w[i] {
			return false
		}
	}
	return true
}

// commit writes w to the grid and records it in the index.
func (p *planner) commit(w string, at Coord, dir Direction) {
	dr, dc := dir.step()
	for i := 0; i < len(w); i++ {
		p.grid.cells[at.Row+i*dr][at.Col+i*dc] = w[i]
	}
	p.index[w] = PlacedWord{Text: w, Anchor: at, Direction: dir}
	p.order = append(p.order, w)
}
