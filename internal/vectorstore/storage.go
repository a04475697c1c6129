package vectorstore

import "simplifier/internal/domain"

// ScoreFunc scores how similar two vectors are; higher is closer.
type ScoreFunc func(a, b domain.Embedding) (float64, error)

// Storage ranks a fixed set of words against a query vector.
type Storage interface {
	// Nearest returns the highest-scoring word. Ties keep the first word in
	// storage order. ok is false when the storage is empty.
	Nearest(vector domain.Embedding) (best domain.ScoredWord, ok bool, err error)
	// Search returns up to topK words by descending score, ties in storage order.
	Search(vector domain.Embedding, topK int) ([]domain.ScoredWord, error)
	Len() int
}
