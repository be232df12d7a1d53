package grid

import "errors"

var (
	// ErrNoWords indicates Generate was called with an empty word list.
	ErrNoWords = errors.New("grid: word list is empty")
	// ErrEmptyWord indicates a zero-length word.
	ErrEmptyWord = errors.New("grid: word must have at least one letter")
	// ErrInvalidWord indicates a word with characters outside A–Z.
	ErrInvalidWord = errors.New("grid: word must be uppercase A-Z")
	// ErrDuplicateWord indicates the same word was passed twice.
	ErrDuplicateWord = errors.New("grid: duplicate word")
	// ErrMissingDirection indicates a word has no direction assigned.
	ErrMissingDirection = errors.New("grid: no direction assigned to word")
	// ErrNilRand indicates no random source was supplied.
	ErrNilRand = errors.New("grid: random source is nil")
	// ErrEmptyGrid indicates FromRows received no rows.
	ErrEmptyGrid = errors.New("grid: at least one row is required")
	// ErrNotSquare indicates FromRows received rows of the wrong length.
	ErrNotSquare = errors.New("grid: rows must form a square")
)
