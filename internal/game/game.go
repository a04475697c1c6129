// Package game implements a word-guessing game on top of the similarity engine.
//
// A target word is drawn from the simple-words list, the closest simple words
// are offered as hints, and every guess from the list is scored by its cosine
// similarity to the target.
package game

import (
	"math/rand/v2"
	"strings"

	"simplifier/internal/domain"
)

const (
	DefaultCorrectThreshold = 0.7
	DefaultHints            = 5
	DefaultSuggestThreshold = 0.85
)

// Engine is the part of the simplifier the game needs.
type Engine interface {
	RelatedWords(word string, k int) []string
	SimilarityBetween(a, b string) float64
}

// Outcome describes how a guess was judged.
type Outcome struct {
	Guess string
	// Valid is false when the guess is not in the word list.
	Valid      bool
	Similarity float64
	Correct    bool
	// Repeat is true for a correct guess that already scored.
	Repeat bool
	// Suggestion is a close word-list entry offered for an invalid guess.
	Suggestion string
	Quit       bool
}

// Option configures a Game.
type Option func(*Game)

// WithRand draws the target from rng instead of the global source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithTarget fixes the target word. It must be in the word list.
func WithTarget(word string) Option {
	return func(g *Game) { g.target = normalize(word) }
}

// WithCorrectThreshold sets the similarity at or above which a guess scores.
func WithCorrectThreshold(v float64) Option {
	return func(g *Game) { g.correctThreshold = v }
}

// WithHints sets how many related words Hints returns.
func WithHints(n int) Option {
	return func(g *Game) { g.hints = n }
}

// WithSuggestThreshold sets the string similarity needed to suggest a word.
func WithSuggestThreshold(v float64) Option {
	return func(g *Game) { g.suggest = newSuggester(v) }
}

// Game holds the state of a single round. It is not safe for concurrent use.
type Game struct {
	engine           Engine
	words            []string
	index            map[string]struct{}
	target           string
	rng              *rand.Rand
	correctThreshold float64
	hints            int
	suggest          *suggester

	score   int
	guesses int
	scored  map[string]struct{}
	over    bool
}

// New starts a round over words. Words are trimmed, lower-cased and de-duplicated.
func New(engine Engine, words []string, opts ...Option) (*Game, error) {
	g := &Game{
		engine:           engine,
		index:            make(map[string]struct{}, len(words)),
		scored:           make(map[string]struct{}),
		correctThreshold: DefaultCorrectThreshold,
		hints:            DefaultHints,
		suggest:          newSuggester(DefaultSuggestThreshold),
	}
	for _, w := range words {
		w = normalize(w)
		if w == "" {
			continue
		}
		if _, dup := g.index[w]; dup {
			continue
		}
		g.index[w] = struct{}{}
		g.words = append(g.words, w)
	}
	if len(g.words) == 0 {
		return nil, domain.ErrEmptyWordList
	}
	for _, o := range opts {
		o(g)
	}
	if _, ok := g.index[g.target]; !ok {
		g.target = g.words[g.intN(len(g.words))]
	}
	return g, nil
}

func (g *Game) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Target returns the word to guess.
func (g *Game) Target() string { return g.target }

// Words returns the de-duplicated word list.
func (g *Game) Words() []string { return append([]string(nil), g.words...) }

// Hints returns the simple words closest to the target.
func (g *Game) Hints() []string { return g.engine.RelatedWords(g.target, g.hints) }

// Score returns the number of distinct correct guesses.
func (g *Game) Score() int { return g.score }

// Guesses returns how many valid guesses were made.
func (g *Game) Guesses() int { return g.guesses }

// Over reports whether the player quit.
func (g *Game) Over() bool { return g.over }

// Guess judges input. "exit" and "quit" end the round. A guess outside the
// word list is not counted and may carry a Suggestion.
//
// Each correct word scores once: guessing it again returns Correct with
// Repeat set and leaves Score unchanged.
func (g *Game) Guess(input string) Outcome {
	guess := normalize(input)
	out := Outcome{Guess: guess}
	if g.over {
		out.Quit = true
		return out
	}
	if guess == "exit" || guess == "quit" {
		g.over = true
		out.Quit = true
		return out
	}
	if _, ok := g.index[guess]; !ok {
		if guess != "" {
			out.Suggestion = g.suggest.best(guess, g.words)
		}
		return out
	}
	out.Valid = true
	g.guesses++
	out.Similarity = g.engine.SimilarityBetween(g.target, guess)
	if out.Similarity >= g.correctThreshold {
		out.Correct = true
		if _, seen := g.scored[guess]; seen {
			out.Repeat = true
		} else {
			g.scored[guess] = struct{}{}
			g.score++
		}
	}
	return out
}

func normalize(w string) string { return strings.ToLower(strings.TrimSpace(w)) }
