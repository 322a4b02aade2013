package matching

import "strings"

// maxQueryKeywords caps the number of name keywords carried into a search
// query; search engines weight the leading terms most heavily anyway.
const maxQueryKeywords = 5

// BuildSearchQuery builds a store search query from a product name: the
// first few significant keywords plus any extracted spec tokens not
// already implied by them, so "256GB" or "32oz" survives even when the
// name is truncated.
func BuildSearchQuery(name string) string {
	keywords := SignificantTokens(name)
	if len(keywords) > maxQueryKeywords {
		keywords = keywords[:maxQueryKeywords]
	}

	present := make(map[string]bool)
	for _, kw := range keywords {
		present[kw] = true
	}

	parts := append([]string{}, keywords...)
	for _, tok := range ExtractSpecs(name).Tokens {
		if !present[strings.ToLower(tok)] {
			parts = append(parts, tok)
		}
	}

	return strings.Join(parts, " ")
}
