package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifier/internal/domain"
	"simplifier/internal/embedding"
	"simplifier/internal/simplifier"
)

type fakeEngine struct {
	sims    map[string]float64
	related []string
	lastK   int
}

func (f *fakeEngine) RelatedWords(word string, k int) []string {
	f.lastK = k
	return f.related
}

func (f *fakeEngine) SimilarityBetween(a, b string) float64 {
	if a == b {
		return 1
	}
	return f.sims[b]
}

func TestNew_EmptyWordList(t *testing.T) {
	_, err := New(&fakeEngine{}, []string{"", "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyWordList)
}

func TestNew_NormalisesAndPicksTargetFromList(t *testing.T) {
	words := []string{" Happy", "glad", "GLAD", "sad", ""}
	for seed := uint64(0); seed < 20; seed++ {
		g, err := New(&fakeEngine{}, words, WithRand(rand.New(rand.NewPCG(seed, seed+1))))
		require.NoError(t, err)
		assert.Equal(t, []string{"happy", "glad", "sad"}, g.Words())
		assert.Contains(t, g.Words(), g.Target())
	}
}

func TestNew_WithTarget(t *testing.T) {
	g, err := New(&fakeEngine{}, []string{"happy", "glad"}, WithTarget("Glad"))
	require.NoError(t, err)
	assert.Equal(t, "glad", g.Target())

	// A target outside the list falls back to a random pick.
	g, err = New(&fakeEngine{}, []string{"happy"}, WithTarget("unicorn"))
	require.NoError(t, err)
	assert.Equal(t, "happy", g.Target())
}

func TestHints(t *testing.T) {
	eng := &fakeEngine{related: []string{"a", "b"}}
	g, err := New(eng, []string{"happy"}, WithHints(3))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, g.Hints())
	assert.Equal(t, 3, eng.lastK)
}

func TestGuess_Scoring(t *testing.T) {
	eng := &fakeEngine{sims: map[string]float64{"glad": 0.7, "sad": 0.69}}
	g, err := New(eng, []string{"happy", "glad", "sad"}, WithTarget("happy"))
	require.NoError(t, err)

	out := g.Guess(" GLAD ")
	assert.True(t, out.Valid)
	assert.True(t, out.Correct, "threshold is inclusive")
	assert.False(t, out.Repeat)
	assert.Equal(t, 1, g.Score())

	out = g.Guess("glad")
	assert.True(t, out.Correct)
	assert.True(t, out.Repeat)
	assert.Equal(t, 1, g.Score())

	out = g.Guess("sad")
	assert.True(t, out.Valid)
	assert.False(t, out.Correct)
	assert.Equal(t, 0.69, out.Similarity)

	out = g.Guess("happy")
	assert.True(t, out.Correct)
	assert.Equal(t, 2, g.Score())
	assert.Equal(t, 4, g.Guesses())
}

func TestGuess_InvalidWithSuggestion(t *testing.T) {
	g, err := New(&fakeEngine{}, []string{"happy", "glad", "sad"}, WithTarget("sad"))
	require.NoError(t, err)

	out := g.Guess("hapy")
	assert.False(t, out.Valid)
	assert.Equal(t, "happy", out.Suggestion)

	out = g.Guess("zzzz")
	assert.False(t, out.Valid)
	assert.Empty(t, out.Suggestion)

	out = g.Guess("")
	assert.False(t, out.Valid)
	assert.Empty(t, out.Suggestion)
	assert.Equal(t, 0, g.Guesses())
}

func TestGuess_Quit(t *testing.T) {
	g, err := New(&fakeEngine{}, []string{"happy"})
	require.NoError(t, err)

	out := g.Guess("Exit")
	assert.True(t, out.Quit)
	assert.True(t, g.Over())

	out = g.Guess("happy")
	assert.True(t, out.Quit)
	assert.Equal(t, 0, g.Score())
}

func TestGame_WithEngine(t *testing.T) {
	full := embedding.NewVocabulary(
		domain.Entry{Word: "happy", Vector: domain.Embedding{1, 0}},
		domain.Entry{Word: "glad", Vector: domain.Embedding{0.9, 0.1}},
		domain.Entry{Word: "sad", Vector: domain.Embedding{-1, 0}},
	)
	simple, _, err := embedding.BuildSimple(full, []string{"happy", "glad", "sad"}, embedding.ParseOptions{})
	require.NoError(t, err)
	e, err := simplifier.New(full, simple)
	require.NoError(t, err)

	g, err := New(e, []string{"happy", "glad", "sad"}, WithTarget("happy"), WithHints(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"happy", "glad"}, g.Hints())
	assert.True(t, g.Guess("glad").Correct)
	assert.False(t, g.Guess("sad").Correct)
}
