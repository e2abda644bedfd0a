// Package fuzzy finds near matches for misspelled option and command names.
// The parser uses it to attach "did you mean" hints to unknown-name errors.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher ranks candidate names by edit distance from an input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher that accepts candidates within maxDistance
// edits. Inputs shorter than two characters never match.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{maxDistance: maxDistance, minLength: 2}
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
}

// Best returns the closest candidate, or "" when nothing is near enough.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Rank(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Rank returns every candidate within the distance limit, closest first.
// Ties are broken by shared prefix length, then declaration order.
func (m *Matcher) Rank(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	lowered := strings.ToLower(input)
	var matches []Match
	for _, candidate := range candidates {
		cl := strings.ToLower(candidate)
		if cl == lowered {
			continue
		}
		d := distance(lowered, cl)
		if d <= m.maxDistance {
			matches = append(matches, Match{Value: candidate, Distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return prefixLen(lowered, strings.ToLower(matches[i].Value)) >
			prefixLen(lowered, strings.ToLower(matches[j].Value))
	})
	return matches
}

func prefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// distance computes the Levenshtein edit distance with a two-row table.
func distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
