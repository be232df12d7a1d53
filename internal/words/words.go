// internal/words/words.go
//
// Word list management for puzzle generation.
//
// Responsibilities:
//   - Load the basic and hardcore vocabularies from files or the embedded defaults.
//   - Sample puzzle words without replacement from a seeded source.
//
// Word lists:
//   - basic:    everyday vocabulary (normal puzzles).
//   - hardcore: long and rare vocabulary.
//
// Load behaviour:
//   1. A non-empty path is read one word per line.
//   2. An empty path falls back to the list embedded in assets/.
//
// Constraints:
//   • Words are MinLen–MaxLen alphabetic letters (a–z), stored lowercase.
//   • Duplicates are removed, first occurrence wins.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/robalobadob/wordsearch/assets"
)

// Length bounds for usable words. Longer words blow up the grid (1.5 × longest).
const (
	MinLen = 3
	MaxLen = 14
)

// Mode selects which vocabulary a puzzle draws from.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeHardcore Mode = "hardcore"
)

var (
	// ErrEmptyList is returned when a vocabulary has no usable words.
	ErrEmptyList = errors.New("words: list is empty")
	// ErrSampleSize is returned when more words are requested than exist.
	ErrSampleSize = errors.New("words: sample size out of range")
	// ErrUnknownMode is returned for a Mode other than basic/hardcore.
	ErrUnknownMode = errors.New("words: unknown mode")
)

// ParseMode maps "" and "basic" to ModeBasic, "hardcore" to ModeHardcore.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeBasic:
		return ModeBasic, nil
	case ModeHardcore:
		return ModeHardcore, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Dictionary holds both vocabularies. It is read-only after Load.
type Dictionary struct {
	basic    []string
	hardcore []string
}

// Load reads the basic and hardcore lists. Empty paths use the embedded lists.
func Load(basicPath, hardcorePath string) (*Dictionary, error) {
	basic, err := loadList(basicPath, assets.BasicList)
	if err != nil {
		return nil, fmt.Errorf("load basic list: %w", err)
	}
	hardcore, err := loadList(hardcorePath, assets.HardcoreList)
	if err != nil {
		return nil, fmt.Errorf("load hardcore list: %w", err)
	}
	return &Dictionary{basic: basic, hardcore: hardcore}, nil
}

// New builds a dictionary from in-memory lists, applying the same filtering as Load.
func New(basic, hardcore []string) (*Dictionary, error) {
	d := &Dictionary{basic: normalize(basic), hardcore: normalize(hardcore)}
	if len(d.basic) == 0 || len(d.hardcore) == 0 {
		return nil, ErrEmptyList
	}
	return d, nil
}

func loadList(path string, embedded func() ([]string, error)) ([]string, error) {
	var raw []string
	var err error
	if path != "" {
		raw, err = readWordFile(path)
	} else {
		raw, err = embedded()
	}
	if err != nil {
		return nil, err
	}
	list := normalize(raw)
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize lowercases, trims, filters to valid words and drops duplicates.
func normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, line := range in {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) < MinLen || len(w) > MaxLen || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// List returns the vocabulary for mode.
func (d *Dictionary) List(mode Mode) ([]string, error) {
	switch mode {
	case ModeBasic:
		return d.basic, nil
	case ModeHardcore:
		return d.hardcore, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Sample draws n distinct words from the mode's list and returns them
// uppercased, in draw order.
func (d *Dictionary) Sample(rng *rand.Rand, mode Mode, n int) ([]string, error) {
	list, err := d.List(mode)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(list) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSampleSize, n, len(list))
	}

	// Partial Fisher–Yates over a copy of the indices.
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = strings.ToUpper(list[idx[i]])
	}
	return out, nil
}

// Stats returns the word counts of both lists.
func (d *Dictionary) Stats() (basicCount int, hardcoreCount int) {
	return len(d.basic), len(d.hardcore)
}
