// Package stores holds the static per-currency storefront registry used
// for comparison scraping. The tables are built once and never mutated at
// runtime.
package stores

import (
	"fmt"
	"net/url"
)

// Store describes one storefront: how to build a search URL for it and
// which selectors locate a result row's price and title.
type Store struct {
	Name string
	// SearchURL maps a query string to a fully formed search URL.
	SearchURL func(query string) string
	// PriceSelector finds price text within one result container.
	// Comma-joined alternatives are evaluated in DOM order.
	PriceSelector string
	// TitleSelector finds the result title within one container.
	TitleSelector string
	// ResultSelector identifies a single result-item container.
	ResultSelector string
}

func searchURL(format string) func(string) string {
	return func(query string) string {
		return fmt.Sprintf(format, url.QueryEscape(query))
	}
}

// directory maps a currency code to its ordered storefront list. Ordering
// is a display convenience only; every store is always attempted.
var directory = map[string][]Store{
	"USD": {
		{
			Name:           "Amazon",
			SearchURL:      searchURL("https://www.amazon.com/s?k=%s"),
			PriceSelector:  ".a-price .a-offscreen, .a-price-whole",
			TitleSelector:  "h2 a span, h2 span",
			ResultSelector: `div[data-component-type="s-search-result"]`,
		},
		{
			Name:           "Walmart",
			SearchURL:      searchURL("https://www.walmart.com/search?q=%s"),
			PriceSelector:  `[data-automation-id="product-price"] span`,
			TitleSelector:  `[data-automation-id="product-title"]`,
			ResultSelector: "div[data-item-id]",
		},
		{
			Name:           "eBay",
			SearchURL:      searchURL("https://www.ebay.com/sch/i.html?_nkw=%s"),
			PriceSelector:  ".s-item__price",
			TitleSelector:  ".s-item__title",
			ResultSelector: "li.s-item",
		},
		{
			Name:           "Target",
			SearchURL:      searchURL("https://www.target.com/s?searchTerm=%s"),
			PriceSelector:  `[data-test="current-price"] span`,
			TitleSelector:  `[data-test="product-title"]`,
			ResultSelector: `div[data-test="@web/ProductCard/ProductCardVariantDefault"]`,
		},
		{
			Name:           "Best Buy",
			SearchURL:      searchURL("https://www.bestbuy.com/site/searchpage.jsp?st=%s"),
			PriceSelector:  ".priceView-hero-price span, .priceView-customer-price span",
			TitleSelector:  ".sku-title a",
			ResultSelector: "li.sku-item",
		},
	},
	"GBP": {
		{
			Name:           "Amazon UK",
			SearchURL:      searchURL("https://www.amazon.co.uk/s?k=%s"),
			PriceSelector:  ".a-price .a-offscreen, .a-price-whole",
			TitleSelector:  "h2 a span, h2 span",
			ResultSelector: `div[data-component-type="s-search-result"]`,
		},
		{
			Name:           "Argos",
			SearchURL:      searchURL("https://www.argos.co.uk/search/%s/"),
			PriceSelector:  `[data-test="component-product-card-price"]`,
			TitleSelector:  `[data-test="component-product-card-title"]`,
			ResultSelector: `div[data-test="component-product-card"]`,
		},
		{
			Name:           "eBay UK",
			SearchURL:      searchURL("https://www.ebay.co.uk/sch/i.html?_nkw=%s"),
			PriceSelector:  ".s-item__price",
			TitleSelector:  ".s-item__title",
			ResultSelector: "li.s-item",
		},
		{
			Name:           "John Lewis",
			SearchURL:      searchURL("https://www.johnlewis.com/search?search-term=%s"),
			PriceSelector:  ".price, [data-testid='product-card-price']",
			TitleSelector:  ".title, [data-testid='product-card-title']",
			ResultSelector: ".product-card, [data-testid='product-card']",
		},
		{
			Name:           "Currys",
			SearchURL:      searchURL("https://www.currys.co.uk/search?q=%s"),
			PriceSelector:  ".product-price, [data-testid='product-price']",
			TitleSelector:  ".product-name, [data-testid='product-name']",
			ResultSelector: ".product-item, [data-testid='product-tile']",
		},
	},
	"EUR": {
		{
			Name:           "Amazon.de",
			SearchURL:      searchURL("https://www.amazon.de/s?k=%s"),
			PriceSelector:  ".a-price .a-offscreen, .a-price-whole",
			TitleSelector:  "h2 a span, h2 span",
			ResultSelector: `div[data-component-type="s-search-result"]`,
		},
		{
			Name:           "eBay.de",
			SearchURL:      searchURL("https://www.ebay.de/sch/i.html?_nkw=%s"),
			PriceSelector:  ".s-item__price",
			TitleSelector:  ".s-item__title",
			ResultSelector: "li.s-item",
		},
		{
			Name:           "MediaMarkt",
			SearchURL:      searchURL("https://www.mediamarkt.de/de/search.html?query=%s"),
			PriceSelector:  "[data-test='mms-price'] span, .price",
			TitleSelector:  "[data-test='product-title'], .product-title",
			ResultSelector: "[data-test='mms-product-card'], .product-wrapper",
		},
		{
			Name:           "Otto",
			SearchURL:      searchURL("https://www.otto.de/suche/%s/"),
			PriceSelector:  ".find_tile__retailPrice, .prd_price__main",
			TitleSelector:  ".find_tile__name, .prd_shortInfo__name",
			ResultSelector: ".find_tile, .prd_product",
		},
	},
	"CAD": {
		{
			Name:           "Amazon.ca",
			SearchURL:      searchURL("https://www.amazon.ca/s?k=%s"),
			PriceSelector:  ".a-price .a-offscreen, .a-price-whole",
			TitleSelector:  "h2 a span, h2 span",
			ResultSelector: `div[data-component-type="s-search-result"]`,
		},
		{
			Name:           "Walmart Canada",
			SearchURL:      searchURL("https://www.walmart.ca/search?q=%s"),
			PriceSelector:  `[data-automation-id="product-price"] span`,
			TitleSelector:  `[data-automation-id="product-title"]`,
			ResultSelector: "div[data-item-id]",
		},
		{
			Name:           "Best Buy Canada",
			SearchURL:      searchURL("https://www.bestbuy.ca/en-ca/search?search=%s"),
			PriceSelector:  "[data-automation='product-price'] span, .price",
			TitleSelector:  "[data-automation='productItemName'], .productItemName",
			ResultSelector: "[data-automation='productItem'], .x-productListItem",
		},
		{
			Name:           "eBay.ca",
			SearchURL:      searchURL("https://www.ebay.ca/sch/i.html?_nkw=%s"),
			PriceSelector:  ".s-item__price",
			TitleSelector:  ".s-item__title",
			ResultSelector: "li.s-item",
		},
	},
	"AUD": {
		{
			Name:           "Amazon.com.au",
			SearchURL:      searchURL("https://www.amazon.com.au/s?k=%s"),
			PriceSelector:  ".a-price .a-offscreen, .a-price-whole",
			TitleSelector:  "h2 a span, h2 span",
			ResultSelector: `div[data-component-type="s-search-result"]`,
		},
		{
			Name:           "eBay AU",
			SearchURL:      searchURL("https://www.ebay.com.au/sch/i.html?_nkw=%s"),
			PriceSelector:  ".s-item__price",
			TitleSelector:  ".s-item__title",
			ResultSelector: "li.s-item",
		},
		{
			Name:           "JB Hi-Fi",
			SearchURL:      searchURL("https://www.jbhifi.com.au/search?query=%s"),
			PriceSelector:  ".price, [data-testid='price']",
			TitleSelector:  ".product-tile-title, [data-testid='product-card-title']",
			ResultSelector: ".product-tile, [data-testid='product-card']",
		},
		{
			Name:           "Kogan",
			SearchURL:      searchURL("https://www.kogan.com/au/shop/?q=%s"),
			PriceSelector:  "[data-testid='price'], .price",
			TitleSelector:  "[data-testid='product-title'], .product-title",
			ResultSelector: "[data-testid='product-card'], .product-card",
		},
	},
}

// ForCurrency returns the storefront list for a currency code. Unknown
// currencies fall back to the USD list.
func ForCurrency(currency string) []Store {
	if list, ok := directory[currency]; ok {
		return list
	}
	return directory["USD"]
}

// Currencies returns the currency codes with a dedicated store list.
func Currencies() []string {
	codes := make([]string, 0, len(directory))
	for code := range directory {
		codes = append(codes, code)
	}
	return codes
}
