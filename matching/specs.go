package matching

import (
	"regexp"
	"strconv"
	"strings"
)

// ProductSpecs holds structured tokens extracted from a free-text product
// name, used to sharpen search queries.
type ProductSpecs struct {
	Brand  string
	Tokens []string
	Name   string
}

var (
	volumeRegex    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(fl\s*oz|oz|ml|liters?|litres?|l|gallons?|gal|quarts?|qt)\b`)
	storageRegex   = regexp.MustCompile(`(?i)\b(\d+)\s*(gb|tb|mb)\b`)
	screenRegex    = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:["”']|inch(?:es)?\b|in\b)`)
	sizeClassRegex = regexp.MustCompile(`(?i)\b(xxl|xl|xs|small|medium|large)\b`)
)

// ExtractSpecs pulls size, capacity, screen-size and size-class tokens out
// of a product name, plus a first-word brand guess. The rules are
// independent and cumulative.
func ExtractSpecs(name string) ProductSpecs {
	specs := ProductSpecs{Name: name}
	seen := make(map[string]bool)
	add := func(tok string) {
		tok = strings.ToLower(tok)
		if tok != "" && !seen[tok] {
			seen[tok] = true
			specs.Tokens = append(specs.Tokens, tok)
		}
	}

	for _, m := range volumeRegex.FindAllStringSubmatch(name, -1) {
		add(m[1] + strings.ToLower(strings.Join(strings.Fields(m[2]), " ")))
	}

	for _, m := range storageRegex.FindAllStringSubmatch(name, -1) {
		add(m[1] + m[2])
	}

	for _, m := range screenRegex.FindAllStringSubmatch(name, -1) {
		// Plausible display sizes only; filters out years and quantities.
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 5 && v <= 100 {
			add(m[1] + " inch")
		}
	}

	for _, m := range sizeClassRegex.FindAllStringSubmatch(name, -1) {
		add(m[1])
	}

	if fields := strings.Fields(name); len(fields) > 0 && len(fields[0]) > 2 {
		specs.Brand = fields[0]
	}

	return specs
}
