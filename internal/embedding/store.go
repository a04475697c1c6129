package embedding

import (
	"log/slog"
	"sync/atomic"

	"simplifier/internal/domain"
)

// Store owns the full and simple vocabularies. Loads build a new snapshot and
// swap it in atomically, so readers always see a complete vocabulary.
// Loads into the same Store must not run concurrently with each other.
type Store struct {
	full   atomic.Pointer[Vocabulary]
	simple atomic.Pointer[Vocabulary]
	opts   ParseOptions
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes load diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.opts.Logger = logger }
}

// WithPreviewSize sets how many entries a LoadReport preview holds.
func WithPreviewSize(n int) Option {
	return func(s *Store) { s.opts.PreviewSize = n }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ParseOptions returns the options the store parses sources with.
func (s *Store) ParseOptions() ParseOptions { return s.opts }

// LoadEmbeddings parses the embeddings source at path and replaces the full vocabulary.
// The simple vocabulary is left untouched.
func (s *Store) LoadEmbeddings(path string) (domain.LoadReport, error) {
	vocab, report, err := ReadEmbeddingsFile(path, s.opts)
	if err != nil {
		return report, err
	}
	s.full.Store(vocab)
	return report, nil
}

// LoadSimpleVocabulary reads the simple-words source at path and replaces the
// simple vocabulary with the listed words that have a full-vocabulary embedding.
func (s *Store) LoadSimpleVocabulary(path string) (domain.LoadReport, error) {
	full := s.full.Load()
	if full == nil {
		return domain.LoadReport{Source: path}, domain.ErrNotLoaded
	}
	s.opts.logger().Info("loading simple words", "path", path)
	words, err := ReadWordsFile(path)
	if err != nil {
		return domain.LoadReport{Source: path}, err
	}
	vocab, report, err := BuildSimple(full, words, s.opts)
	report.Source = path
	if err != nil {
		return report, err
	}
	s.simple.Store(vocab)
	return report, nil
}

// Install swaps in prebuilt snapshots. A nil argument leaves that vocabulary unchanged.
func (s *Store) Install(full, simple *Vocabulary) {
	if full != nil {
		s.full.Store(full)
	}
	if simple != nil {
		s.simple.Store(simple)
	}
}

// Embedding looks up word in the full vocabulary by exact key.
func (s *Store) Embedding(word string) (domain.Embedding, bool) {
	return s.full.Load().Get(word)
}

// Full returns the current full vocabulary snapshot, nil before the first load.
func (s *Store) Full() *Vocabulary { return s.full.Load() }

// Simple returns the current simple vocabulary snapshot, nil before the first load.
func (s *Store) Simple() *Vocabulary { return s.simple.Load() }
