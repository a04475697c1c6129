package simplifier_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifier/internal/domain"
	"simplifier/internal/embedding"
	"simplifier/internal/simplifier"
)

func vocab(entries map[string]domain.Embedding) *embedding.Vocabulary {
	list := make([]domain.Entry, 0, len(entries))
	for w, v := range entries {
		list = append(list, domain.Entry{Word: w, Vector: v})
	}
	return embedding.NewVocabulary(list...)
}

func subset(full *embedding.Vocabulary, words ...string) *embedding.Vocabulary {
	simple, _, err := embedding.BuildSimple(full, words, embedding.ParseOptions{})
	if err != nil {
		panic(err)
	}
	return simple
}

func newEngine(t *testing.T, full map[string]domain.Embedding, simple ...string) *simplifier.Engine {
	t.Helper()
	f := vocab(full)
	e, err := simplifier.New(f, subset(f, simple...))
	require.NoError(t, err)
	return e
}

func TestSimplifyWord_HappyGladSad(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"happy": {1, 0},
		"glad":  {0.9, 0.1},
		"sad":   {-1, 0},
	}, "glad", "sad")

	// cos(happy, glad) = 0.9 / sqrt(0.82) ~ 0.9939, above the keep threshold.
	want := 0.9 / math.Sqrt(0.82)
	assert.Greater(t, want, simplifier.DefaultKeep)

	m := e.Match("happy")
	assert.True(t, m.Known)
	assert.Equal(t, "glad", m.Best.Word)
	assert.InDelta(t, want, m.Best.Score, 1e-12)
	assert.Equal(t, "happy", m.Output)
	assert.False(t, m.Replaced)
	assert.Equal(t, "happy", e.SimplifyWord("happy"))
}

func TestSimplifyWord_ReplacesWithinBand(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"difficult": {1, 0},
		"hard":      {0.3, 1},
		"easy":      {-1, 0.2},
	}, "hard", "easy")

	m := e.Match("Difficult,")
	assert.Equal(t, "difficult", m.Cleaned)
	assert.InDelta(t, 0.3/math.Sqrt(1.09), m.Best.Score, 1e-12)
	assert.Equal(t, "hard", m.Output)
	assert.True(t, m.Replaced)
}

func TestSimplifyWord_KeepsWhenBestAboveKeepEvenIfOtherCandidateExists(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"large": {1, 0.1},
		"big":   {1, 0},
		"huge":  {0.3, 1},
	}, "big", "huge")

	assert.Equal(t, "large", e.SimplifyWord("large"))
}

func TestSimplifyWord_BelowFloorPassesThrough(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"arcane": {1, 0},
		"thing":  {0.05, 1},
	}, "thing")

	m := e.Match("arcane")
	assert.Equal(t, "arcane", m.Best.Word)
	assert.Equal(t, simplifier.DefaultFloor, m.Best.Score)
	assert.Equal(t, "arcane", m.Output)
	assert.False(t, m.Replaced)
}

func TestSimplifyWord_UnknownWordReturnsCleaned(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{"cat": {1, 0}}, "cat")

	m := e.Match("Zyzzyva!!")
	assert.False(t, m.Known)
	assert.Equal(t, "zyzzyva", m.Output)
	assert.Equal(t, "", e.SimplifyWord("1234"))
}

func TestSimplifyWord_SelfInSimpleVocabularyIsKept(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"cat": {1, 0},
		"dog": {0.3, 1},
	}, "cat", "dog")

	assert.Equal(t, "cat", e.SimplifyWord("CAT"))
}

func TestSimplifyWord_TiesKeepLexicallyFirst(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"obscure": {1, 0},
		"zed":     {0.3, 1},
		"alpha":   {0.3, 1},
	}, "zed", "alpha")

	assert.Equal(t, "alpha", e.SimplifyWord("obscure"))
}

func TestSimplifyWord_EmptySimpleVocabulary(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{"cat": {1, 0}})

	assert.Equal(t, "cat", e.SimplifyWord("cat"))
}

func TestSimplifyWord_CustomThresholds(t *testing.T) {
	f := vocab(map[string]domain.Embedding{
		"happy": {1, 0},
		"glad":  {0.9, 0.1},
	})
	e, err := simplifier.New(f, subset(f, "glad"), simplifier.WithThresholds(0.1, 0.999))
	require.NoError(t, err)

	assert.Equal(t, "glad", e.SimplifyWord("happy"))
}

func TestNew_RejectsInvertedThresholds(t *testing.T) {
	f := vocab(map[string]domain.Embedding{"cat": {1, 0}})
	_, err := simplifier.New(f, nil, simplifier.WithThresholds(0.6, 0.5))
	require.Error(t, err)
}

func TestNew_RequiresFullVocabulary(t *testing.T) {
	_, err := simplifier.New(nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotLoaded)
}

func TestNew_RejectsSimpleDimensionMismatch(t *testing.T) {
	full := vocab(map[string]domain.Embedding{"cat": {1, 0}})
	simple := vocab(map[string]domain.Embedding{"dog": {1, 0, 0}})
	_, err := simplifier.New(full, simple)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func relatedFixture(t *testing.T) *simplifier.Engine {
	return newEngine(t, map[string]domain.Embedding{
		"query": {1, 0},
		"a":     {1, 0.1},
		"b":     {1, 0.5},
		"c":     {1, 1},
		"d":     {0.5, 1},
		"e":     {0, 1},
		"f":     {-1, 0},
		"g":     {1, 0.5},
	}, "a", "b", "c", "d", "e", "f", "g")
}

func TestRelatedWords_TopFiveNonIncreasing(t *testing.T) {
	e := relatedFixture(t)

	res := e.Related("query", 5)
	require.Len(t, res, 5)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}
	// b and g tie; b comes first in vocabulary order.
	assert.Equal(t, []string{"a", "b", "g", "c", "d"}, e.RelatedWords("query", 5))
}

func TestRelatedWords_DefaultsAndBounds(t *testing.T) {
	e := relatedFixture(t)

	assert.Len(t, e.RelatedWords("query", 0), simplifier.DefaultRelated)
	assert.Len(t, e.RelatedWords("query", 100), 7)
	assert.Equal(t, []string{"a", "b"}, e.RelatedWords("query", 2))
}

func TestRelatedWords_UnknownWord(t *testing.T) {
	e := relatedFixture(t)

	assert.Empty(t, e.RelatedWords("missing", 5))
	// Exact key lookup: no cleaning or case folding.
	assert.Empty(t, e.RelatedWords("Query", 5))
}

func TestSimilarityBetween(t *testing.T) {
	e := newEngine(t, map[string]domain.Embedding{
		"cat": {0.2, 0.7, -0.1},
		"dog": {0.25, 0.6, 0},
	}, "dog")

	assert.InDelta(t, 1.0, e.SimilarityBetween("cat", "cat"), 1e-12)
	assert.Equal(t, 0.0, e.SimilarityBetween("cat", "zzz-unknown"))
	assert.Equal(t, 0.0, e.SimilarityBetween("zzz-unknown", "cat"))

	want, err := simplifier.CosineSimilarity(domain.Embedding{0.2, 0.7, -0.1}, domain.Embedding{0.25, 0.6, 0})
	require.NoError(t, err)
	assert.InDelta(t, want, e.SimilarityBetween("cat", "dog"), 1e-12)
}

func TestEngine_ConcurrentQueries(t *testing.T) {
	e := relatedFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.SimplifyWord("query")
				_ = e.RelatedWords("query", 3)
				_ = e.SimilarityBetween("query", "a")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"a", "b", "g"}, e.RelatedWords("query", 3))
}
