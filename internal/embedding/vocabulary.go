package embedding

import (
	"sort"

	"simplifier/internal/domain"
)

// Vocabulary is an immutable word -> embedding snapshot.
// Iteration is in lexical key order so scans over it are reproducible.
// A nil *Vocabulary behaves as an empty, unloaded vocabulary.
type Vocabulary struct {
	words     []string
	vectors   map[string]domain.Embedding
	dimension int
}

func newVocabulary(vectors map[string]domain.Embedding, dimension int) *Vocabulary {
	words := make([]string, 0, len(vectors))
	for w := range vectors {
		words = append(words, w)
	}
	sort.Strings(words)
	return &Vocabulary{words: words, vectors: vectors, dimension: dimension}
}

// NewVocabulary builds a snapshot from entries. Later duplicates replace earlier ones.
// Entries whose length differs from the first entry are ignored.
func NewVocabulary(entries ...domain.Entry) *Vocabulary {
	vectors := make(map[string]domain.Embedding, len(entries))
	dim := 0
	for _, e := range entries {
		if dim == 0 {
			dim = len(e.Vector)
		}
		if len(e.Vector) != dim {
			continue
		}
		vectors[e.Word] = e.Vector
	}
	return newVocabulary(vectors, dim)
}

// Get returns the embedding stored under the exact key word.
func (v *Vocabulary) Get(word string) (domain.Embedding, bool) {
	if v == nil {
		return nil, false
	}
	vec, ok := v.vectors[word]
	return vec, ok
}

// Contains reports whether word has an embedding.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.Get(word)
	return ok
}

// Len returns the number of words in the vocabulary.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

// Dimension returns the shared vector length, or 0 for an empty vocabulary.
func (v *Vocabulary) Dimension() int {
	if v == nil {
		return 0
	}
	return v.dimension
}

// Words returns a copy of the keys in lexical order.
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.words...)
}

// Entries returns all entries in lexical order. Vectors are shared, not copied,
// and must not be modified.
func (v *Vocabulary) Entries() []domain.Entry {
	return v.Preview(v.Len())
}

// Preview returns at most n entries from the start of the lexical order.
func (v *Vocabulary) Preview(n int) []domain.Entry {
	if v == nil || n <= 0 {
		return nil
	}
	if n > len(v.words) {
		n = len(v.words)
	}
	out := make([]domain.Entry, n)
	for i := 0; i < n; i++ {
		w := v.words[i]
		out[i] = domain.Entry{Word: w, Vector: v.vectors[w]}
	}
	return out
}
