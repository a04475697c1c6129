package game

import "github.com/antzucaro/matchr"

// phoneticThreshold is the Jaro-Winkler score accepted when the Double
// Metaphone codes of the guess and the candidate overlap.
const phoneticThreshold = 0.70

// suggester finds the word-list entry a mistyped guess most likely meant.
type suggester struct {
	fuzzyThreshold float64
}

func newSuggester(threshold float64) *suggester {
	return &suggester{fuzzyThreshold: threshold}
}

// best returns the closest candidate, or "" when none is close enough.
// Phonetic matches beat purely textual ones.
func (s *suggester) best(guess string, candidates []string) string {
	gp, gs := matchr.DoubleMetaphone(guess)
	var (
		bestWord     string
		bestScore    float64
		bestPhonetic bool
	)
	for _, c := range candidates {
		score := matchr.JaroWinkler(guess, c, false)
		cp, cs := matchr.DoubleMetaphone(c)
		phonetic := codesOverlap(gp, gs, cp, cs)
		switch {
		case phonetic && score >= phoneticThreshold:
			if !bestPhonetic || score > bestScore {
				bestWord, bestScore, bestPhonetic = c, score, true
			}
		case !bestPhonetic && score >= s.fuzzyThreshold && score > bestScore:
			bestWord, bestScore = c, score
		}
	}
	return bestWord
}

func codesOverlap(ap, as, bp, bs string) bool {
	for _, a := range []string{ap, as} {
		if a == "" {
			continue
		}
		if a == bp || a == bs {
			return true
		}
	}
	return false
}
