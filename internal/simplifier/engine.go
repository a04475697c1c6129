// Package simplifier replaces uncommon words with close words from a simple
// vocabulary, using cosine similarity between word embeddings.
//
// A word is replaced only when its best simple-vocabulary match is a different
// word scoring in the band (Floor, Keep]. A best score above Keep means the word
// is treated as already simple and passes through unchanged.
package simplifier

import (
	"fmt"
	"log/slog"

	"simplifier/internal/domain"
	"simplifier/internal/embedding"
	"simplifier/internal/vectorstore"
	"simplifier/internal/vectorstore/memory"
)

const (
	// DefaultFloor is the score a candidate must exceed to count as a match.
	DefaultFloor = 0.1
	// DefaultKeep is the score above which the input word is kept as is.
	DefaultKeep = 0.5
	// DefaultRelated is the number of related words returned when k is not positive.
	DefaultRelated = 5
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for per-word diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithThresholds overrides the match floor and the keep threshold.
func WithThresholds(floor, keep float64) Option {
	return func(e *Engine) {
		e.floor = floor
		e.keep = keep
	}
}

// Engine answers simplification and similarity queries over two vocabulary
// snapshots. It never mutates them and is safe for concurrent use.
type Engine struct {
	full   *embedding.Vocabulary
	simple vectorstore.Storage
	floor  float64
	keep   float64
	logger *slog.Logger
}

// New builds an engine over full and simple. Both are borrowed; simple must
// share full's dimensionality.
func New(full, simple *embedding.Vocabulary, opts ...Option) (*Engine, error) {
	if full == nil {
		return nil, domain.ErrNotLoaded
	}
	e := &Engine{full: full, floor: DefaultFloor, keep: DefaultKeep, logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	if e.floor >= e.keep {
		return nil, fmt.Errorf("simplifier: floor %.3f must be below keep threshold %.3f", e.floor, e.keep)
	}
	if simple.Len() > 0 && simple.Dimension() != full.Dimension() {
		return nil, fmt.Errorf("simplifier: simple vocabulary: %w: %d vs %d",
			domain.ErrDimensionMismatch, simple.Dimension(), full.Dimension())
	}
	st, err := memory.NewStorage(simple.Entries(), CosineSimilarity, memory.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.simple = st
	return e, nil
}

// FromStore builds an engine over the store's current snapshots.
func FromStore(store *embedding.Store, opts ...Option) (*Engine, error) {
	return New(store.Full(), store.Simple(), opts...)
}

// Match explains how a single word is simplified.
type Match struct {
	Input   string
	Cleaned string
	// Known is false when the cleaned word has no embedding.
	Known bool
	// Best is the best candidate above the floor, or the cleaned word at the
	// floor score when no candidate cleared it.
	Best     domain.ScoredWord
	Output   string
	Replaced bool
}

// Match cleans word and decides its replacement.
func (e *Engine) Match(word string) Match {
	cleaned := Clean(word)
	m := Match{Input: word, Cleaned: cleaned, Output: cleaned}
	vec, ok := e.full.Get(cleaned)
	if !ok {
		e.logger.Debug("no embedding for input word", "word", cleaned)
		return m
	}
	m.Known = true

	m.Best = domain.ScoredWord{Word: cleaned, Score: e.floor}
	best, found, err := e.simple.Nearest(vec)
	if err != nil {
		e.logger.Warn("similarity scan failed", "word", cleaned, "err", err)
		return m
	}
	if found && best.Score > e.floor {
		m.Best = best
	}
	if m.Best.Score > e.keep {
		return m
	}
	e.logger.Debug("best match", "word", cleaned, "match", m.Best.Word, "score", m.Best.Score)
	if m.Best.Word != cleaned {
		m.Output = m.Best.Word
		m.Replaced = true
	}
	return m
}

// SimplifyWord returns the replacement for word, or the cleaned word itself.
func (e *Engine) SimplifyWord(word string) string {
	return e.Match(word).Output
}

// Related returns up to k simple-vocabulary words ranked by similarity to
// word, which is looked up by exact key. Unknown words yield nil.
func (e *Engine) Related(word string, k int) []domain.ScoredWord {
	vec, ok := e.full.Get(word)
	if !ok {
		e.logger.Debug("no embedding for word", "word", word)
		return nil
	}
	if k <= 0 {
		k = DefaultRelated
	}
	res, err := e.simple.Search(vec, k)
	if err != nil {
		e.logger.Warn("related search failed", "word", word, "err", err)
		return nil
	}
	return res
}

// RelatedWords is Related without the scores.
func (e *Engine) RelatedWords(word string, k int) []string {
	res := e.Related(word, k)
	words := make([]string, len(res))
	for i, r := range res {
		words[i] = r.Word
	}
	return words
}

// SimilarityBetween scores two words by exact key. It returns 0 when either is unknown.
func (e *Engine) SimilarityBetween(a, b string) float64 {
	va, okA := e.full.Get(a)
	vb, okB := e.full.Get(b)
	if !okA || !okB {
		e.logger.Debug("one or both words not found", "a", a, "b", b)
		return 0
	}
	sim, err := CosineSimilarity(va, vb)
	if err != nil {
		e.logger.Warn("similarity failed", "a", a, "b", b, "err", err)
		return 0
	}
	return sim
}

// Known reports whether word has an embedding in the full vocabulary.
func (e *Engine) Known(word string) bool { return e.full.Contains(word) }
