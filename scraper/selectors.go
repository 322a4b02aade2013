package scraper

import (
	"net/url"
	"strings"
)

// SelectorSet is the per-site extraction hints for a single product page.
type SelectorSet struct {
	// Price selectors, tried in order. Each entry may comma-join
	// alternatives evaluated in DOM order.
	Price []string
	// Title selectors, tried before the generic fallbacks.
	Title []string
	// WaitHint, when set, is waited for (best effort) before extraction.
	WaitHint string
}

// genericTitleSelectors are the fallbacks applied after any site-specific
// title selectors, on both product pages and search-result rows.
var genericTitleSelectors = []string{
	"#productTitle",
	`[data-test="product-title"]`,
	`[data-testid="product-title"]`,
	"h1",
}

// defaultSelectors covers unrecognized retailers: structured-data and
// OpenGraph meta tags first, then the usual price class conventions.
var defaultSelectors = SelectorSet{
	Price: []string{
		`meta[property="product:price:amount"], meta[property="og:price:amount"]`,
		`[itemprop="price"]`,
		".price, .product-price, .current-price, .sale-price",
		`[class*="price"], [id*="price"]`,
	},
	Title: []string{`meta[property="og:title"]`},
}

// siteSelectors maps a site key (the registrable first hostname label) to
// its selector set. Adding a site is a pure data addition.
var siteSelectors = map[string]SelectorSet{
	"amazon": {
		Price: []string{
			"#corePrice_feature_div .a-offscreen, #corePriceDisplay_desktop_feature_div .a-offscreen",
			".a-price .a-offscreen",
			"#priceblock_ourprice, #priceblock_dealprice",
		},
		Title:    []string{"#productTitle"},
		WaitHint: "#productTitle",
	},
	"ebay": {
		Price: []string{
			".x-price-primary .ux-textspans",
			"#prcIsum, #mm-saleDscPrc",
		},
		Title:    []string{".x-item-title__mainTitle", "#itemTitle"},
		WaitHint: ".x-price-primary",
	},
	"walmart": {
		Price: []string{
			`[itemprop="price"]`,
			`[data-testid="price-wrap"] span`,
		},
		Title:    []string{`h1[itemprop="name"]`},
		WaitHint: `[itemprop="price"]`,
	},
	"target": {
		Price: []string{
			`[data-test="product-price"]`,
		},
		Title:    []string{`h1[data-test="product-title"]`},
		WaitHint: `[data-test="product-price"]`,
	},
	"bestbuy": {
		Price: []string{
			`.priceView-hero-price span[aria-hidden="true"]`,
			".priceView-customer-price span",
		},
		Title:    []string{".sku-title h1"},
		WaitHint: ".priceView-hero-price",
	},
	"argos": {
		Price: []string{
			`[data-test="product-price-primary"]`,
			`[data-test="product-price"] li`,
		},
		Title:    []string{`[data-test="product-title"]`},
		WaitHint: `[data-test="product-title"]`,
	},
	"johnlewis": {
		Price: []string{
			`[data-testid="price"]`,
			".price",
		},
		Title: []string{`h1[data-testid="product:title"]`},
	},
	"pricerunner": {
		Price: []string{
			`[data-testid="price"]`,
			".price",
		},
		Title: []string{"h1"},
	},
}

// SelectorsForURL resolves the selector set for a product URL by parsed
// hostname, falling back to the generic set.
func SelectorsForURL(rawURL string) SelectorSet {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultSelectors
	}
	if set, ok := siteSelectors[siteKey(u.Hostname())]; ok {
		return set
	}
	return defaultSelectors
}

// siteKey returns the first meaningful hostname label, e.g.
// "www.amazon.co.uk" -> "amazon".
func siteKey(host string) string {
	labels := strings.Split(strings.ToLower(host), ".")
	for _, label := range labels {
		if label == "www" || label == "" {
			continue
		}
		return label
	}
	return ""
}
