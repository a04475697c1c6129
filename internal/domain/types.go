package domain

import "errors"

var (
	// ErrSourceNotFound is returned when an embeddings or words source path does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrDimensionMismatch is returned when two vectors of different length are compared.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNotLoaded is returned when an operation needs the full vocabulary before it was loaded.
	ErrNotLoaded = errors.New("embeddings not loaded")
	// ErrEmptyWordList is returned when the game has no words to pick a target from.
	ErrEmptyWordList = errors.New("word list is empty")
)

// Embedding is a fixed-length vector representing a word's meaning.
type Embedding []float64

// Entry pairs a vocabulary word with its embedding.
type Entry struct {
	Word   string
	Vector Embedding
}

// ScoredWord is a vocabulary word ranked against a query vector.
type ScoredWord struct {
	Word  string
	Score float64
}

// Skip records an input that was dropped during a load.
// Line is the 1-based row of an embeddings source. Index is the 1-based
// position in a word list, which is blank-filtered and so has no line numbers.
type Skip struct {
	Line   int
	Index  int
	Word   string
	Reason string
}

// LoadReport summarises a single load of a vocabulary source.
type LoadReport struct {
	Source  string
	Loaded  int
	Preview []Entry
	Skipped []Skip
}
