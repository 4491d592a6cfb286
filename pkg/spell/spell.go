// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package spell

// Nearest returns the candidate closest to word, or "" when none is close
// enough to be a likely misspelling. Ties go to the earlier candidate.
func Nearest(word string, candidates []string) string {
	maxDistance := len([]rune(word)) / 3
	if maxDistance < 1 {
		maxDistance = 1
	}

	var nearest string
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		if candidate == word {
			continue
		}
		if d := distance(word, candidate); d < bestDistance {
			nearest = candidate
			bestDistance = d
		}
	}
	return nearest
}

// distance is the Levenshtein distance between a and b.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
