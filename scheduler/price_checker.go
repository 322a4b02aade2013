package scheduler

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"shopscout/config"
	"shopscout/matching"
	"shopscout/models"
	"shopscout/notifier"
	"shopscout/scraper"
	"shopscout/stores"
)

// ProductStore is the product persistence surface the checker needs.
type ProductStore interface {
	GetCheckableProducts() ([]models.Product, error)
	MarkScraping(id int) error
	UpdateAfterCheck(id int, name string, price float64, currency string) error
	MarkCheckFailed(id int) error
	AddHistory(productID int, price float64, currency string) error
}

// ComparisonStore persists per-store comparison offers.
type ComparisonStore interface {
	UpsertOffer(productID int, storeName, storeURL string, price float64, currency string) error
	UpsertUnavailable(productID int, storeName, storeURL, currency string) error
}

// SettingsStore looks up user notification preferences.
type SettingsStore interface {
	GetSettings(userID string) (*models.UserSettings, error)
}

// PageFetcher drives the browser. Implemented by scraper.Fetcher.
type PageFetcher interface {
	FetchProductPage(target string, sel scraper.SelectorSet) (*models.ScrapedPage, error)
	FetchSearchResults(target string, st stores.Store, max int) ([]models.SearchResult, error)
}

// AlertSender delivers price-drop notifications.
type AlertSender interface {
	NotifyPriceDrop(webhookURL string, alert notifier.PriceDropAlert) error
}

// RunStats is a snapshot of the most recent check cycle.
type RunStats struct {
	LastRun      time.Time     `json:"last_run"`
	LastDuration time.Duration `json:"last_duration"`
	Checked      int           `json:"checked"`
	Failed       int           `json:"failed"`
}

// PriceChecker runs the check cycle: scrape each tracked product's own
// page, record price movement, then search comparison stores for the same
// item. One product is in flight at a time; pacing between fetches keeps
// the worker's request rate polite.
type PriceChecker struct {
	products    ProductStore
	comparisons ComparisonStore
	settings    SettingsStore
	fetcher     PageFetcher
	alerts      AlertSender
	ranker      *matching.Ranker
	cfg         config.WorkerConfig

	mu    sync.Mutex
	stats RunStats
}

// NewPriceChecker wires a checker from its collaborators.
func NewPriceChecker(
	products ProductStore,
	comparisons ComparisonStore,
	settings SettingsStore,
	fetcher PageFetcher,
	alerts AlertSender,
	ranker *matching.Ranker,
	cfg config.WorkerConfig,
) *PriceChecker {
	return &PriceChecker{
		products:    products,
		comparisons: comparisons,
		settings:    settings,
		fetcher:     fetcher,
		alerts:      alerts,
		ranker:      ranker,
		cfg:         cfg,
	}
}

// Stats returns a snapshot of the last completed run.
func (pc *PriceChecker) Stats() RunStats {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.stats
}

// RunOnce executes one full check cycle over every checkable product.
// Individual product failures are recorded and logged, never fatal to the
// cycle.
func (pc *PriceChecker) RunOnce() error {
	started := time.Now()

	products, err := pc.products.GetCheckableProducts()
	if err != nil {
		return fmt.Errorf("failed to load products: %v", err)
	}

	log.Printf("Starting check cycle for %d products", len(products))

	checked, failed := 0, 0
	for i, product := range products {
		if i > 0 && pc.cfg.ProductDelay > 0 {
			time.Sleep(pc.cfg.ProductDelay)
		}

		if err := pc.checkProduct(&product); err != nil {
			log.Printf("Check failed for product %d (%s): %v", product.ID, product.Name, err)
			failed++
			continue
		}
		checked++
	}

	duration := time.Since(started)
	log.Printf("Check cycle finished: %d ok, %d failed in %s", checked, failed, duration.Round(time.Second))

	pc.mu.Lock()
	pc.stats = RunStats{
		LastRun:      started,
		LastDuration: duration,
		Checked:      checked,
		Failed:       failed,
	}
	pc.mu.Unlock()

	return nil
}

// checkProduct handles one product end to end: own-page scrape, price
// bookkeeping, notification, then the comparison sweep.
func (pc *PriceChecker) checkProduct(product *models.Product) error {
	productURL := product.GetURL()

	currency := product.Currency
	if override := currencyForURL(productURL); override != "" {
		currency = override
	}
	if currency == "" {
		currency = "USD"
	}

	if err := pc.products.MarkScraping(product.ID); err != nil {
		log.Printf("Failed to mark product %d scraping: %v", product.ID, err)
	}

	page, err := pc.fetcher.FetchProductPage(productURL, scraper.SelectorsForURL(productURL))
	if err != nil {
		if markErr := pc.products.MarkCheckFailed(product.ID); markErr != nil {
			log.Printf("Failed to mark product %d failed: %v", product.ID, markErr)
		}
		return err
	}

	name := pc.resolveName(product, page, productURL)

	oldPrice := product.GetCurrentPrice()
	hadPrice := product.HasPrice()
	newPrice := page.Price

	// A failed write is logged, not fatal: the scrape itself succeeded and
	// the rest of the cycle (history, alert, comparison sweep) still applies.
	if err := pc.products.UpdateAfterCheck(product.ID, name, newPrice, currency); err != nil {
		log.Printf("Failed to update product %d after check: %v", product.ID, err)
	}

	if pc.shouldRecordHistory(hadPrice, oldPrice, newPrice) {
		if err := pc.products.AddHistory(product.ID, newPrice, currency); err != nil {
			log.Printf("Failed to record history for product %d: %v", product.ID, err)
		}
	}

	if hadPrice && newPrice < oldPrice {
		pc.notifyDrop(product, name, oldPrice, newPrice, currency)
	}

	pc.sweepComparisons(product.ID, name, newPrice, currency)

	return nil
}

// resolveName picks the best display name: a meaningful scraped title wins,
// then a slug derived from the URL when the stored name is a placeholder,
// then whatever the user typed.
func (pc *PriceChecker) resolveName(product *models.Product, page *models.ScrapedPage, productURL string) string {
	if len(strings.TrimSpace(page.Title)) > 5 {
		return strings.TrimSpace(page.Title)
	}
	if isPlaceholderName(product.Name) {
		if derived := nameFromURL(productURL); derived != "" {
			return derived
		}
	}
	return product.Name
}

func (pc *PriceChecker) shouldRecordHistory(hadPrice bool, oldPrice, newPrice float64) bool {
	if pc.cfg.HistoryPolicy == "always" {
		return true
	}
	return !hadPrice || newPrice != oldPrice
}

// notifyDrop sends the webhook alert for a price drop. Best effort: a
// missing settings row, empty webhook, or delivery failure is logged and
// swallowed.
func (pc *PriceChecker) notifyDrop(product *models.Product, name string, oldPrice, newPrice float64, currency string) {
	settings, err := pc.settings.GetSettings(product.UserID)
	if err != nil {
		log.Printf("Failed to load settings for user %s: %v", product.UserID, err)
		return
	}
	if settings == nil || settings.DiscordWebhook == "" {
		return
	}

	alert := notifier.PriceDropAlert{
		ProductName: name,
		ProductURL:  product.GetURL(),
		OldPrice:    oldPrice,
		NewPrice:    newPrice,
		Currency:    currency,
		Username:    settings.Username,
		AvatarURL:   settings.AvatarURL,
	}
	if err := pc.alerts.NotifyPriceDrop(settings.DiscordWebhook, alert); err != nil {
		log.Printf("Webhook delivery failed for product %d: %v", product.ID, err)
	}
}

// sweepComparisons searches every store for the product's currency and
// upserts one comparison row per store. A failed search or an unconvincing
// best match both become an "unavailable" row; the sweep never aborts.
func (pc *PriceChecker) sweepComparisons(productID int, name string, referencePrice float64, currency string) {
	query := matching.BuildSearchQuery(name)
	if query == "" {
		return
	}

	for i, store := range stores.ForCurrency(currency) {
		if i > 0 && pc.cfg.StoreDelay > 0 {
			time.Sleep(pc.cfg.StoreDelay)
		}

		searchURL := store.SearchURL(query)

		results, err := pc.fetcher.FetchSearchResults(searchURL, store, pc.cfg.MaxSearchResults)
		if err != nil {
			log.Printf("Search failed on %s for product %d: %v", store.Name, productID, err)
			pc.upsertUnavailable(productID, store.Name, searchURL, currency)
			continue
		}

		candidates := make([]matching.Candidate, 0, len(results))
		for _, res := range results {
			candidates = append(candidates, matching.Candidate{
				Title:    res.Title,
				Price:    res.Price,
				Position: res.Position,
			})
		}

		best := pc.ranker.Rank(candidates, name, referencePrice)
		if best == nil {
			pc.upsertUnavailable(productID, store.Name, searchURL, currency)
			continue
		}

		if err := pc.comparisons.UpsertOffer(productID, store.Name, searchURL, best.Price, currency); err != nil {
			log.Printf("Failed to save offer from %s for product %d: %v", store.Name, productID, err)
		}
	}
}

func (pc *PriceChecker) upsertUnavailable(productID int, storeName, storeURL, currency string) {
	if err := pc.comparisons.UpsertUnavailable(productID, storeName, storeURL, currency); err != nil {
		log.Printf("Failed to save unavailable offer from %s for product %d: %v", storeName, productID, err)
	}
}

// placeholderWords are leading words that mark a stored name as carrying
// no searchable signal ("Product 42", "Untitled item").
var placeholderWords = map[string]bool{
	"product":  true,
	"untitled": true,
	"unnamed":  true,
	"new":      true,
}

func isPlaceholderName(name string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	if len([]rune(trimmed)) < 4 {
		return true
	}
	fields := strings.Fields(trimmed)
	return len(fields) > 0 && placeholderWords[fields[0]]
}

// tldCurrencies maps retailer domain suffixes to the currency their listed
// prices use. The product URL wins over the stored currency because the
// scraped price is denominated in the site's currency regardless of what
// the user picked.
var tldCurrencies = []struct {
	suffix   string
	currency string
}{
	{".co.uk", "GBP"},
	{".uk", "GBP"},
	{".ca", "CAD"},
	{".com.au", "AUD"},
	{".au", "AUD"},
	{".de", "EUR"},
	{".fr", "EUR"},
	{".it", "EUR"},
	{".es", "EUR"},
	{".nl", "EUR"},
	{".ie", "EUR"},
}

// currencyForURL infers the listing currency from the product URL's
// hostname, or "" when the TLD is not recognized.
func currencyForURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for _, entry := range tldCurrencies {
		if strings.HasSuffix(host, entry.suffix) {
			return entry.currency
		}
	}
	return ""
}

// nameFromURL derives a display name from the product URL path: the slug
// before an Amazon-style /dp/ segment when present, otherwise the longest
// hyphenated path segment. Returns "" when nothing usable is found.
func nameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := []string{}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	candidate := ""
	for i, seg := range segments {
		if strings.EqualFold(seg, "dp") && i > 0 {
			candidate = segments[i-1]
			break
		}
	}
	if candidate == "" {
		for _, seg := range segments {
			if strings.Contains(seg, "-") && len(seg) > len(candidate) {
				candidate = seg
			}
		}
	}
	if candidate == "" {
		return ""
	}

	if unescaped, err := url.PathUnescape(candidate); err == nil {
		candidate = unescaped
	}
	candidate = strings.NewReplacer("-", " ", "_", " ").Replace(candidate)
	candidate = strings.Join(strings.Fields(candidate), " ")

	if len([]rune(candidate)) < 4 {
		return ""
	}
	return candidate
}
