// Package textsim provides normalized lexical similarity between two
// strings, used as the text signal in incident correlation.
package textsim

import "strings"

const (
	jaccardWeight = 0.6
	editWeight    = 0.4
)

// Similarity returns a score in [0,1] combining Jaccard similarity over
// word sets (robust to reordering) with normalized edit distance (catches
// near-duplicate phrasing and typos). Two strings that are identical after
// normalization score 1.0, including the empty/empty case.
func Similarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == b {
		return 1.0
	}

	score := jaccardWeight*jaccard(tokenize(a), tokenize(b)) +
		editWeight*(1.0-normalizedEditDistance(a, b))

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tokenize(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// normalizedEditDistance is the Levenshtein distance divided by the longer
// string's rune length.
func normalizedEditDistance(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}

	return float64(levenshtein(ra, rb)) / float64(longest)
}

func levenshtein(a, b []rune) int {
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
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
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
