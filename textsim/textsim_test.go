package textsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityExactMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"identical", "wildfire near ridge road", "wildfire near ridge road"},
		{"case and whitespace", "  Wildfire Near Ridge Road ", "wildfire near ridge road"},
		{"both empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1.0, Similarity(tt.a, tt.b))
		})
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// word reordering keeps the full Jaccard component
	reordered := Similarity("flooding on main street", "main street on flooding")
	assert.Greater(t, reordered, 0.6)

	// a small typo should still score high via the edit-distance component
	typo := Similarity("earthquake downtown", "earthqauke downtown")
	assert.Greater(t, typo, 0.3)

	disjoint := Similarity("wildfire in the hills", "bridge collapse downtown")
	assert.Less(t, disjoint, 0.4)
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"", "some very long description of an incident"},
		{"a", "b"},
		{"flood", "flood flood flood flood"},
		{"x y z", "z y x"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := "power lines down after the storm"
	b := "storm knocked power lines down"
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-9)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshtein([]rune(tt.a), []rune(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}
