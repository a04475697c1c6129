package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"simplifier/internal/domain"
	"simplifier/internal/vectorstore"
)

// DefaultTopK is used by Search when topK is not positive.
const DefaultTopK = 5

// Storage is an in-memory brute-force index over a borrowed set of entries.
// It is read-only after construction and safe for concurrent queries.
type Storage struct {
	dimension int
	words     []string
	vectors   []domain.Embedding
	score     vectorstore.ScoreFunc
	logger    *slog.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger logs every comparison at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) { s.logger = logger }
}

// NewStorage indexes entries in the given order. Vectors are referenced, not copied.
func NewStorage(entries []domain.Entry, score vectorstore.ScoreFunc, opts ...Option) (*Storage, error) {
	if score == nil {
		return nil, errors.New("memory: nil score function")
	}
	s := &Storage{score: score, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	s.words = make([]string, len(entries))
	s.vectors = make([]domain.Embedding, len(entries))
	for i, e := range entries {
		if i == 0 {
			s.dimension = len(e.Vector)
		}
		if len(e.Vector) != s.dimension {
			return nil, fmt.Errorf("memory: entry %q: %w: got %d, want %d",
				e.Word, domain.ErrDimensionMismatch, len(e.Vector), s.dimension)
		}
		s.words[i] = e.Word
		s.vectors[i] = e.Vector
	}
	return s, nil
}

// Len returns the number of indexed words.
func (s *Storage) Len() int { return len(s.words) }

// Nearest scans every entry and keeps the first strictly best score.
func (s *Storage) Nearest(vector domain.Embedding) (domain.ScoredWord, bool, error) {
	var best domain.ScoredWord
	found := false
	for i, v := range s.vectors {
		sc, err := s.score(vector, v)
		if err != nil {
			return domain.ScoredWord{}, false, err
		}
		s.logger.Debug("comparing", "candidate", s.words[i], "similarity", sc)
		if !found || sc > best.Score {
			best = domain.ScoredWord{Word: s.words[i], Score: sc}
			found = true
		}
	}
	return best, found, nil
}

// Search ranks every entry and returns the top topK.
func (s *Storage) Search(vector domain.Embedding, topK int) ([]domain.ScoredWord, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	scores := make([]float64, len(s.vectors))
	for i, v := range s.vectors {
		sc, err := s.score(vector, v)
		if err != nil {
			return nil, err
		}
		scores[i] = sc
	}
	idxs := argsortDesc(scores)
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.ScoredWord, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.ScoredWord{Word: s.words[j], Score: scores[j]})
	}
	return results, nil
}

// argsortDesc orders indexes by descending value; equal values keep index order.
func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}
