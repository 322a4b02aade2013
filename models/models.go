package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Product lifecycle statuses. Transitions are monotonic within a check
// cycle: queued/scraping move to tracking on success or scrape_failed on
// failure; a manual user edit resets to tracking.
const (
	StatusQueued       = "queued"
	StatusScraping     = "scraping"
	StatusTracking     = "tracking"
	StatusScrapeFailed = "scrape_failed"
)

// HistorySourceAuto tags price_history rows written by the worker, as
// opposed to rows created by a user edit.
const HistorySourceAuto = "auto"

// Product represents a tracked product owned by a user.
type Product struct {
	ID           int             `json:"id" db:"id"`
	UserID       string          `json:"user_id" db:"user_id"`
	Name         string          `json:"name" db:"name"`
	URL          sql.NullString  `json:"url" db:"url"`
	CurrentPrice sql.NullFloat64 `json:"current_price" db:"current_price"`
	Currency     string          `json:"currency" db:"currency"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	LastChecked  *time.Time      `json:"last_checked" db:"last_checked"`
}

// HasPrice returns true if the product has a known price.
func (p *Product) HasPrice() bool {
	return p.CurrentPrice.Valid
}

// GetCurrentPrice returns the current price, or 0 if unknown.
func (p *Product) GetCurrentPrice() float64 {
	if p.CurrentPrice.Valid {
		return p.CurrentPrice.Float64
	}
	return 0.0
}

// GetURL returns the source URL, or "" if the product has none.
func (p *Product) GetURL() string {
	if p.URL.Valid {
		return p.URL.String
	}
	return ""
}

// MarshalJSON renders nullable columns as plain JSON null instead of the
// sql.Null* envelope.
func (p *Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	var price *float64
	if p.CurrentPrice.Valid {
		v := p.CurrentPrice.Float64
		price = &v
	}
	var url *string
	if p.URL.Valid {
		v := p.URL.String
		url = &v
	}
	return json.Marshal(&struct {
		*Alias
		CurrentPrice *float64 `json:"current_price"`
		URL          *string  `json:"url"`
	}{Alias: (*Alias)(p), CurrentPrice: price, URL: url})
}

// PriceHistoryEntry is an immutable price observation. Rows are appended
// by the worker and never updated.
type PriceHistoryEntry struct {
	ID         int       `json:"id" db:"id"`
	ProductID  int       `json:"product_id" db:"product_id"`
	Price      float64   `json:"price" db:"price"`
	Currency   string    `json:"currency" db:"currency"`
	Source     string    `json:"source" db:"source"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

// ComparisonOffer is the per-(product, store) comparison row. A cycle with
// no confident match keeps the row but nulls the price and clears
// availability, preserving the store link for manual click-through.
type ComparisonOffer struct {
	ID          int             `json:"id" db:"id"`
	ProductID   int             `json:"product_id" db:"product_id"`
	StoreName   string          `json:"store_name" db:"store_name"`
	StoreURL    string          `json:"store_url" db:"store_url"`
	Price       sql.NullFloat64 `json:"price" db:"price"`
	Currency    string          `json:"currency" db:"currency"`
	IsAvailable bool            `json:"is_available" db:"is_available"`
	LastChecked time.Time       `json:"last_checked" db:"last_checked"`
}

// UserSettings carries the notification and locale preferences consumed by
// the worker (webhook fan-out, default currency).
type UserSettings struct {
	ID              string `json:"id" db:"id"`
	DiscordWebhook  string `json:"discord_webhook" db:"discord_webhook"`
	CheckFrequency  int    `json:"check_frequency" db:"check_frequency"`
	DefaultCurrency string `json:"default_currency" db:"default_currency"`
	Username        string `json:"username" db:"username"`
	AvatarURL       string `json:"avatar_url" db:"avatar_url"`
}

// ScrapedPage is the result of a single-product page fetch.
type ScrapedPage struct {
	Title string
	Price float64
}

// SearchResult is one raw candidate row pulled from a store's search page.
// Position is the zero-based index in the store's own result ordering.
type SearchResult struct {
	Title    string
	Price    float64
	Position int
}
