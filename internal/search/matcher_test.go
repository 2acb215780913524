package search

import (
	"math"
	"testing"
)

func TestSimilarityExactMatch(t *testing.T) {
	if got := Similarity("sweater", "sweater", DefaultThreshold); got != 1 {
		t.Fatalf("expected 1 for identical strings, got %v", got)
	}
}

func TestSimilarityIsCaseInsensitive(t *testing.T) {
	if got := Similarity("SwEaTeR", "sweater", DefaultThreshold); got != 1 {
		t.Fatalf("expected 1 regardless of case, got %v", got)
	}
}

func TestSimilaritySubstringScoresOne(t *testing.T) {
	if got := Similarity("sweat", "Cozy Sweater", DefaultThreshold); got != 1 {
		t.Fatalf("expected 1 for a containment match, got %v", got)
	}
}

func TestSimilarityTypoSurvivesThreshold(t *testing.T) {
	// one deletion over seven characters: 1 - 1/7
	got := Similarity("sweter", "sweater", DefaultThreshold)
	want := 1 - 1.0/7
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v for sweter/sweater, got %v", want, got)
	}
}

func TestSimilarityBelowThresholdIsZero(t *testing.T) {
	if got := Similarity("xyz", "sweater", DefaultThreshold); got != 0 {
		t.Fatalf("expected 0 below the threshold, got %v", got)
	}
}

func TestSimilarityEmptyStrings(t *testing.T) {
	if got := Similarity("", "", DefaultThreshold); got != 1 {
		t.Fatalf("expected 1 for two empty strings, got %v", got)
	}
}

func TestSimilarityBounds(t *testing.T) {
	cases := [][2]string{
		{"hat", "blanket"},
		{"scarf", "scarves"},
		{"a", "z"},
		{"wool", "woollen"},
	}
	for _, c := range cases {
		got := Similarity(c[0], c[1], 0)
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", c[0], c[1], got)
		}
	}
}

func TestLevenshteinKnownDistances(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"", "abc", 3},
		{"same", "same", 0},
	}
	for _, c := range cases {
		if got := levenshtein([]rune(c.a), []rune(c.b)); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
