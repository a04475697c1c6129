package simplifier

import (
	"regexp"
	"strings"
)

var nonAlphaRe = regexp.MustCompile(`[^a-zA-Z]+`)

// Clean strips every non-ASCII-letter character from word and lower-cases the rest.
func Clean(word string) string {
	return strings.ToLower(nonAlphaRe.ReplaceAllString(word, ""))
}
