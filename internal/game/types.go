// internal/game/types.go
//
// Core type definitions for the word search game engine.
// Defines:
//   - Status: episode state (playing / won / drawn).
//   - Span: a guessed run of cells, start and end inclusive.
//   - Game: the fixed puzzle plus the mutable per-episode session.
//   - Result: the outcome of one applied guess.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/words"
)

// Status is the coarse state of an episode.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusDrawn   Status = "drawn"
)

// Finished reports whether s is terminal.
func (s Status) Finished() bool { return s == StatusWon || s == StatusDrawn }

// Span is a guessed run of cells from (StartRow, StartCol) to (EndRow, EndCol),
// both ends inclusive. End may precede start.
type Span struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	EndRow   int `json:"endRow"`
	EndCol   int `json:"endCol"`
}

// Horizontal reports whether the span stays on one row.
func (s Span) Horizontal() bool { return s.StartRow == s.EndRow }

// Vertical reports whether the span stays in one column.
func (s Span) Vertical() bool { return s.StartCol == s.EndCol }

// Cells lists the covered cells top-to-bottom / left-to-right.
// A span that is neither horizontal nor vertical covers nothing.
func (s Span) Cells() []grid.Coord {
	switch {
	case s.Horizontal():
		lo, hi := minmax(s.StartCol, s.EndCol)
		out := make([]grid.Coord, 0, hi-lo+1)
		for c := lo; c <= hi; c++ {
			out = append(out, grid.Coord{Row: s.StartRow, Col: c})
		}
		return out
	case s.Vertical():
		lo, hi := minmax(s.StartRow, s.EndRow)
		out := make([]grid.Coord, 0, hi-lo+1)
		for r := lo; r <= hi; r++ {
			out = append(out, grid.Coord{Row: r, Col: s.StartCol})
		}
		return out
	}
	return nil
}

func minmax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Game holds the state of a single word search episode.
//
// Board, Placed, Words and Dropped are fixed at creation. Correct,
// Highlighted, Incorrect, Remaining, Status and Reason are the session and
// only change through ApplyGuess / Verify.
type Game struct {
	ID        string     // Unique game identifier (uuid).
	Mode      words.Mode // Vocabulary the words were drawn from.
	Seed      uint64     // Seed that reproduces Board exactly.
	CreatedAt time.Time

	Board   *grid.Grid
	Placed  grid.Index
	Words   []string // placed words, in placement order
	Dropped []string // sampled words the planner could not place

	Budget      int                      // incorrect attempts allowed per episode
	Remaining   int                      // incorrect attempts left
	Correct     map[string]struct{}      // found words
	Highlighted map[grid.Coord]struct{}  // cells of found words
	Incorrect   []Span                   // incorrect attempts, in order
	Status      Status
	Reason      string // human-readable reason once finished

	mu sync.Mutex
}

// Result describes one applied guess.
type Result struct {
	Span      Span   `json:"span"`
	Correct   bool   `json:"correct"`
	Word      string `json:"word,omitempty"` // matched placed word, if any
	Letters   string `json:"letters"`        // letters read off the board along the span
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
	Status    Status `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// Outcome is the termination signal of an episode.
type Outcome struct {
	Status Status   `json:"status"`
	Reason string   `json:"reason,omitempty"`
	Found  []string `json:"found"`
}

// Snapshot is a read-only view of a game for display and transport.
type Snapshot struct {
	ID        string     `json:"gameId"`
	Mode      words.Mode `json:"mode"`
	Seed      uint64     `json:"seed"`
	Size      int        `json:"size"`
	Board     string     `json:"board"`
	Words     []string   `json:"words"`
	Dropped   []string   `json:"dropped,omitempty"`
	Found     []string   `json:"found"`
	Incorrect []Span     `json:"incorrect"`
	Remaining int        `json:"remaining"`
	Status    Status     `json:"status"`
	Reason    string     `json:"reason,omitempty"`
}
