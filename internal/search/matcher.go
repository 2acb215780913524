package search

import "strings"

// DefaultThreshold is the similarity cutoff used when a caller has no
// field-specific preference.
const DefaultThreshold = 0.6

// Similarity scores how closely query matches target, in [0, 1]. A substring
// match wins outright; otherwise the score is the Levenshtein-normalized
// similarity, floored to 0 when it falls below threshold.
func Similarity(query, target string, threshold float64) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(target)

	if strings.Contains(t, q) {
		return 1
	}

	qr := []rune(q)
	tr := []rune(t)
	maxLen := len(qr)
	if len(tr) > maxLen {
		maxLen = len(tr)
	}
	if maxLen == 0 {
		return 1
	}

	similarity := 1 - float64(levenshtein(qr, tr))/float64(maxLen)
	if similarity >= threshold {
		return similarity
	}
	return 0
}

// levenshtein computes the edit distance between a and b with the classic
// full-table dynamic program: cell [i][j] holds the distance between the
// first i runes of b and the first j runes of a.
func levenshtein(a, b []rune) int {
	matrix := make([][]int, len(b)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(a)+1)
	}

	for j := 0; j <= len(a); j++ {
		matrix[0][j] = j
	}
	for i := 0; i <= len(b); i++ {
		matrix[i][0] = i
	}

	for i := 1; i <= len(b); i++ {
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			matrix[i][j] = minInt(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(b)][len(a)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
