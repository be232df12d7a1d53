// internal/game/engine.go
//
// Core game engine for a single word search episode.
// Responsibilities:
//   - Create new games: sample words, assign directions, run the planner.
//   - Verify guesses by position against the placed words.
//   - Validate and apply turns: bounds, straightness, duplicates, budget.
//   - Track state transitions: playing → won | drawn.
//
// Notes:
//   - All randomness flows from one seeded source, so Seed reproduces the
//     whole episode (word sample, directions, overlap tie-breaks, filler).
//   - Matching is by position: a span equal to a placed word's cells is that
//     word. Letters are never compared.

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/words"
)

const (
	DefaultNumWords        = 5
	DefaultIncorrectBudget = 20

	// pcgStream is the second PCG word; the seed supplies the first.
	pcgStream = 0x9e3779b97f4a7c15
)

var (
	ErrGameFinished   = errors.New("game: game finished")
	ErrOutOfBounds    = errors.New("game: coordinates outside the grid")
	ErrNotStraight    = errors.New("game: words can only be horizontal or vertical")
	ErrDuplicateGuess = errors.New("game: the action has already been attempted")
	ErrNoAction       = errors.New("game: no '[start_row start_col end_row end_col]' found")
)

// IsInvalidMove reports whether err rejects a move without changing state.
func IsInvalidMove(err error) bool {
	return errors.Is(err, ErrGameFinished) || errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrNotStraight) || errors.Is(err, ErrDuplicateGuess) ||
		errors.Is(err, ErrNoAction)
}

// Options configures New. Zero values take the defaults.
type Options struct {
	Mode     words.Mode
	Seed     *uint64 // nil picks a random seed
	NumWords int
	Budget   int
}

// NewRand returns the generator every episode draws from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// New samples words from dict and generates a fresh episode.
func New(dict *words.Dictionary, opts Options) (*Game, error) {
	if opts.Mode == "" {
		opts.Mode = words.ModeBasic
	}
	if opts.NumWords <= 0 {
		opts.NumWords = DefaultNumWords
	}
	if opts.Budget <= 0 {
		opts.Budget = DefaultIncorrectBudget
	}
	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := NewRand(seed)

	picked, err := dict.Sample(rng, opts.Mode, opts.NumWords)
	if err != nil {
		return nil, fmt.Errorf("sample words: %w", err)
	}
	slices.SortStableFunc(picked, func(a, b string) int { return len(b) - len(a) })
	dirs := AssignDirections(rng, picked)

	res, err := grid.Generate(picked, dirs, rng)
	if err != nil {
		return nil, fmt.Errorf("generate grid: %w", err)
	}
	if len(res.Dropped) > 0 {
		log.Warn().Strs("dropped", res.Dropped).Uint64("seed", seed).Msg("could not place every word")
	}

	g := Start(res, opts.Budget)
	g.Mode = opts.Mode
	g.Seed = seed
	return g, nil
}

// AssignDirections picks across or down for each word, in order.
func AssignDirections(rng *rand.Rand, list []string) map[string]grid.Direction {
	dirs := make(map[string]grid.Direction, len(list))
	for _, w := range list {
		dirs[w] = grid.Direction(rng.IntN(2))
	}
	return dirs
}

// Start opens a session over an already generated puzzle.
func Start(res *grid.Result, budget int) *Game {
	if budget <= 0 {
		budget = DefaultIncorrectBudget
	}
	return &Game{
		ID:          uuid.NewString(),
		Mode:        words.ModeBasic,
		CreatedAt:   time.Now().UTC(),
		Board:       res.Grid,
		Placed:      res.Index,
		Words:       slices.Clone(res.Order),
		Dropped:     slices.Clone(res.Dropped),
		Budget:      budget,
		Remaining:   budget,
		Correct:     make(map[string]struct{}),
		Highlighted: make(map[grid.Coord]struct{}),
		Incorrect:   []Span{},
		Status:      StatusPlaying,
	}
}

// Verify checks span against the placed words. On a match the word is marked
// found and its cells highlighted; otherwise the span is appended to the
// incorrect attempts. It does not deduplicate, check bounds or touch the
// budget; ApplyGuess does that.
//
// A span that is neither horizontal nor vertical returns ErrNotStraight and
// records nothing.
func (g *Game) Verify(s Span) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok, err := g.verify(s)
	return ok, err
}

func (g *Game) verify(s Span) (string, bool, error) {
	if !s.Horizontal() && !s.Vertical() {
		return "", false, ErrNotStraight
	}
	for _, w := range g.Words {
		if matches(g.Placed[w], s) {
			g.Correct[w] = struct{}{}
			for _, c := range s.Cells() {
				g.Highlighted[c] = struct{}{}
			}
			return w, true, nil
		}
	}
	g.Incorrect = append(g.Incorrect, s)
	return "", false, nil
}

// matches reports whether s covers exactly the cells of pw.
func matches(pw grid.PlacedWord, s Span) bool {
	switch pw.Direction {
	case grid.Across:
		lo, hi := minmax(s.StartCol, s.EndCol)
		return s.Horizontal() && pw.Anchor.Row == s.StartRow && pw.Anchor.Col == lo && pw.Len() == hi-lo+1
	case grid.Down:
		lo, hi := minmax(s.StartRow, s.EndRow)
		return s.Vertical() && pw.Anchor.Col == s.StartCol && pw.Anchor.Row == lo && pw.Len() == hi-lo+1
	}
	return false
}

// Extract reads the letters along a straight span, lowest coordinate first.
// It returns "" for a span that is neither horizontal nor vertical.
func Extract(b *grid.Grid, s Span) string {
	cells := s.Cells()
	out := make([]byte, len(cells))
	for i, c := range cells {
		out[i] = b.At(c.Row, c.Col)
	}
	return string(out)
}

// ApplyGuess validates and applies one turn.
//
// Validation (any failure returns an error and changes nothing):
//   - Game must still be playing.
//   - All four coordinates inside the grid.
//   - Span horizontal or vertical.
//   - Span not already recorded as an incorrect attempt.
//
// State transitions:
//   - Correct and every placed word found → won.
//   - Incorrect → one try consumed; none left → drawn.
func (g *Game) ApplyGuess(s Span) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status.Finished() {
		return g.result(s), ErrGameFinished
	}
	if !g.Board.InBounds(grid.Coord{Row: s.StartRow, Col: s.StartCol}) ||
		!g.Board.InBounds(grid.Coord{Row: s.EndRow, Col: s.EndCol}) {
		return g.result(s), ErrOutOfBounds
	}
	if !s.Horizontal() && !s.Vertical() {
		return g.result(s), ErrNotStraight
	}
	if slices.Contains(g.Incorrect, s) {
		return g.result(s), ErrDuplicateGuess
	}

	word, ok, err := g.verify(s)
	if err != nil {
		return g.result(s), err
	}

	if ok {
		if len(g.Correct) == len(g.Placed) {
			g.Status = StatusWon
			g.Reason = "Congratulations! You completed the word search puzzle."
		}
	} else {
		g.Remaining--
		if g.Remaining <= 0 {
			g.Remaining = 0
			g.Status = StatusDrawn
			g.Reason = "No more incorrect tries remaining."
		}
	}

	r := g.result(s)
	r.Correct = ok
	r.Word = word
	r.Letters = Extract(g.Board, s)
	if ok {
		r.Message = "You have found a word. Updated Board state:\n" + g.render(true)
	} else {
		r.Message = fmt.Sprintf("[%d %d %d %d] is an incorrect attempt. %d incorrect tries remaining.",
			s.StartRow, s.StartCol, s.EndRow, s.EndCol, g.Remaining)
	}
	return r, nil
}

// ApplyAction parses every "[r c r c]" group in text and applies them in
// order. It stops after the first incorrect guess, the first invalid one,
// or once the game is over. Results for the applied guesses are returned
// even when a later guess fails validation.
func (g *Game) ApplyAction(text string) ([]Result, error) {
	spans := ParseAction(text)
	if len(spans) == 0 {
		return nil, ErrNoAction
	}
	var out []Result
	for _, s := range spans {
		r, err := g.ApplyGuess(s)
		if err != nil {
			return out, err
		}
		out = append(out, r)
		if !r.Correct || r.Status.Finished() {
			break
		}
	}
	return out, nil
}

func (g *Game) result(s Span) Result {
	return Result{Span: s, Remaining: g.Remaining, Status: g.Status, Reason: g.Reason}
}

// Render draws the board. With reveal, found words are bracketed.
func (g *Game) Render(reveal bool) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.render(reveal)
}

func (g *Game) render(reveal bool) string {
	return grid.Render(g.Board, g.Highlighted, reveal)
}

// Outcome reports the episode state and the words found so far.
func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Outcome{Status: g.Status, Reason: g.Reason, Found: g.found()}
}

func (g *Game) found() []string {
	out := make([]string, 0, len(g.Correct))
	for w := range g.Correct {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the current state for display.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:        g.ID,
		Mode:      g.Mode,
		Seed:      g.Seed,
		Size:      g.Board.Size(),
		Board:     g.render(true),
		Words:     slices.Clone(g.Words),
		Dropped:   slices.Clone(g.Dropped),
		Found:     g.found(),
		Incorrect: slices.Clone(g.Incorrect),
		Remaining: g.Remaining,
		Status:    g.Status,
		Reason:    g.Reason,
	}
}
