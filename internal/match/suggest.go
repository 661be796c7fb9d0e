package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.5

// Candidate is a name scored against a wanted name.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against want and returns those reaching
// MinSimilarity, best first. Ties keep the input order.
func Rank(want string, candidates []string) []Candidate {
	var ranked []Candidate
	for _, c := range candidates {
		score := IdentSimilarity(want, c)
		if score < MinSimilarity {
			continue
		}
		ranked = append(ranked, Candidate{Name: c, Score: score})
	}

	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranked
}

// Closest returns the best candidate for want, if any is similar enough.
func Closest(want string, candidates []string) (string, bool) {
	ranked := Rank(want, candidates)
	if len(ranked) == 0 {
		return "", false
	}

	return ranked[0].Name, true
}
