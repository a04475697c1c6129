package simplifier

import (
	"fmt"
	"math"

	"simplifier/internal/domain"
)

// CosineSimilarity returns dot(a, b) / (|a| * |b|). It returns 0 when either
// vector has zero magnitude and domain.ErrDimensionMismatch when lengths differ.
//
// Both vectors are scaled by their largest absolute component before the sums
// are taken, so finite inputs never overflow or underflow to NaN or 0.
func CosineSimilarity(a, b domain.Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine similarity: %w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	sa, sb := maxAbs(a), maxAbs(b)
	if sa == 0 || sb == 0 {
		return 0, nil
	}
	var dot, na2, nb2 float64
	for i := range a {
		x, y := a[i]/sa, b[i]/sb
		dot += x * y
		na2 += x * x
		nb2 += y * y
	}
	cos := dot / (math.Sqrt(na2) * math.Sqrt(nb2))
	// rounding can push |cos| a hair past 1
	return math.Max(-1, math.Min(1, cos)), nil
}

func maxAbs(v domain.Embedding) float64 {
	m := 0.0
	for _, x := range v {
		if ax := math.Abs(x); ax > m {
			m = ax
		}
	}
	return m
}
