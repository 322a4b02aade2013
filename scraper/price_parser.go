package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// Prices outside this band are assumed to be extraction noise (a product
// ID or a year captured instead of a price). The heuristic favors false
// negatives: a missed price shows as unavailable, a wrong price pollutes
// history.
const (
	minPlausiblePrice = 0.0
	maxPlausiblePrice = 100000.0
)

// priceRegex permits an optional leading currency symbol, digit groups
// separated by comma, period or space, and an optional 2-digit fraction.
var priceRegex = regexp.MustCompile(`(?:[\$£€¥₹]\s*)?([0-9]+(?:[.,\s][0-9]{1,3})*)`)

// commaDecimalRegex spots the European convention: the match ends in a
// comma followed by exactly two digits.
var commaDecimalRegex = regexp.MustCompile(`,[0-9]{2}$`)

// ParsePrice extracts a numeric price from arbitrary text believed to
// contain one. Returns false when no plausible price is present.
func ParsePrice(text string) (float64, bool) {
	match := priceRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	raw := match[1]

	if commaDecimalRegex.MatchString(raw) {
		// European format: everything before the final comma is the
		// integer part, with period/space thousands separators.
		idx := strings.LastIndex(raw, ",")
		intPart := strings.NewReplacer(".", "", ",", "", " ", "").Replace(raw[:idx])
		raw = intPart + "." + raw[idx+1:]
	} else {
		// US/UK format: commas and spaces are thousands separators.
		raw = strings.NewReplacer(",", "", " ", "").Replace(raw)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if value <= minPlausiblePrice || value >= maxPlausiblePrice {
		return 0, false
	}

	return value, true
}

// looksLikePrice reports whether a text snippet contains something
// parseable as a plausible price.
func looksLikePrice(text string) bool {
	_, ok := ParsePrice(text)
	return ok
}
