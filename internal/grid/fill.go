package grid

import "math/rand/v2"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// fill replaces every empty cell with a uniformly random letter.
// Cells already holding a placed letter are left untouched.
func fill(g *Grid, rng *rand.Rand) {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] == empty {
				g.cells[r][c] = alphabet[rng.IntN(len(alphabet))]
			}
		}
	}
}
