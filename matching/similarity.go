package matching

import "strings"

// stopWords are ignored when extracting significant keywords from a
// product name.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "with": true, "for": true, "on": true,
	"at": true, "to": true, "from": true, "by": true, "of": true,
	"as": true,
}

// Similarity returns the normalized edit-distance similarity of two
// strings in [0,1]. Case-insensitive and symmetric; identical strings
// (including two empty strings) score 1.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// KeywordOverlap returns the fraction of the target's significant tokens
// that also appear in the candidate. Directional: it measures how much of
// the target is covered, not the reverse. Returns 0 when the target has no
// significant tokens.
func KeywordOverlap(target, candidate string) float64 {
	targetTokens := SignificantTokens(target)
	if len(targetTokens) == 0 {
		return 0.0
	}

	candidateSet := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(candidate)) {
		candidateSet[tok] = true
	}

	matched := 0
	for _, tok := range targetTokens {
		if candidateSet[tok] {
			matched++
		}
	}

	return float64(matched) / float64(len(targetTokens))
}

// SignificantTokens lowercases and splits a name, keeping tokens longer
// than 2 characters that are not stop words.
func SignificantTokens(s string) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// levenshteinDistance computes the edit distance between two strings using
// a two-row matrix.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
