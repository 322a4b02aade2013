package scraper

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"shopscout/config"
	"shopscout/models"
	"shopscout/stores"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const maxTitleLength = 100

// stealthJS masks the most common headless-browser fingerprints. Sites
// frequently gate prices behind this class of check.
const stealthJS = `
	Object.defineProperty(navigator, 'webdriver', {
		get: () => undefined,
	});
	Object.defineProperty(navigator, 'plugins', {
		get: () => [1, 2, 3, 4, 5],
	});
	Object.defineProperty(navigator, 'languages', {
		get: () => ['en-US', 'en'],
	});
	window.chrome = { runtime: {} };
`

// Fetcher drives headless-browser page loads. One isolated page per
// invocation, closed on every exit path; the shared browser process is the
// only long-lived resource.
type Fetcher struct {
	browser  *rod.Browser
	cfg      config.BrowserConfig
	detector *BotDetector
}

// NewFetcher launches (or attaches to) headless Chromium and connects a
// browser session.
func NewFetcher(cfg config.BrowserConfig) (*Fetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false)

	// System Chromium in container deployments, auto-detected otherwise.
	if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
		l = l.Bin("/usr/bin/chromium-browser")
		log.Printf("Using system Chromium")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %v", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %v", err)
	}

	return &Fetcher{
		browser:  browser,
		cfg:      cfg,
		detector: NewBotDetector(),
	}, nil
}

// Close shuts the browser down.
func (f *Fetcher) Close() {
	if f.browser != nil {
		if err := f.browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
	}
}

// FetchProductPage loads a single product page and extracts its title and
// price using the site's selector set. Any failure (navigation error,
// timeout, bot wall, missing price) comes back as an error the caller
// treats as "no result".
func (f *Fetcher) FetchProductPage(target string, sel SelectorSet) (*models.ScrapedPage, error) {
	var result *models.ScrapedPage
	err := f.withPage(target, sel.WaitHint, func(page *rod.Page) error {
		price, ok := f.extractPrice(page, sel.Price)
		if !ok {
			return fmt.Errorf("no plausible price found on %s", target)
		}
		result = &models.ScrapedPage{
			Title: f.extractTitle(page, sel.Title),
			Price: price,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FetchSearchResults loads a store search page and extracts up to max
// candidate rows. A row is kept only when both a title and a plausible
// price resolve inside its container. Zero rows with no error means the
// page loaded but nothing usable was found.
func (f *Fetcher) FetchSearchResults(target string, st stores.Store, max int) ([]models.SearchResult, error) {
	if max <= 0 {
		max = 10
	}

	var results []models.SearchResult
	err := f.withPage(target, st.ResultSelector, func(page *rod.Page) error {
		containers, err := page.Elements(st.ResultSelector)
		if err != nil {
			return fmt.Errorf("result containers not found: %v", err)
		}

		for i, container := range containers {
			if len(results) >= max {
				break
			}

			title := firstElementText(container, append([]string{st.TitleSelector}, genericTitleSelectors...))
			if title == "" {
				continue
			}

			price, ok := priceWithin(container, st.PriceSelector)
			if !ok {
				continue
			}

			results = append(results, models.SearchResult{
				Title:    truncate(collapseWhitespace(title), maxTitleLength),
				Price:    price,
				Position: i,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// withPage runs fn against a freshly opened page. The page is closed on
// every exit path, and the whole call is bounded by the outer deadline so
// a hung browser cannot stall the run.
func (f *Fetcher) withPage(target, waitHint string, fn func(*rod.Page) error) error {
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("failed to open page: %v", err)
	}
	defer page.Close()

	page = page.Timeout(f.cfg.Deadline)

	if _, err := page.EvalOnNewDocument(stealthJS); err != nil {
		log.Printf("Stealth script injection failed: %v", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width: 1920, Height: 1080, DeviceScaleFactor: 1,
	}); err != nil {
		log.Printf("Failed to set viewport: %v", err)
	}

	nav := page.Timeout(f.cfg.NavigationTimeout)
	if err := nav.Navigate(target); err != nil {
		return fmt.Errorf("navigation failed: %v", err)
	}
	if err := nav.WaitLoad(); err != nil {
		return fmt.Errorf("page never finished loading: %v", err)
	}
	_ = nav.WaitStable(time.Second)

	if waitHint != "" {
		hinted := page.Timeout(f.cfg.SelectorTimeout)
		if _, err := hinted.Element(waitHint); err != nil {
			// Best effort; JS-rendered pages often work without it.
			log.Printf("Wait hint %q did not appear: %v", waitHint, err)
		}
	}

	// Let client-rendered content settle.
	time.Sleep(f.cfg.RenderDelay)

	if html, err := page.HTML(); err == nil {
		title := ""
		if info, err := page.Info(); err == nil {
			title = info.Title
		}
		if blocked, reason := f.detector.Blocked(html, title); blocked {
			return fmt.Errorf("bot wall detected: %s", reason)
		}
	}

	return fn(page)
}

// extractTitle walks the site-specific selectors then the generic
// fallbacks and returns the first non-empty match.
func (f *Fetcher) extractTitle(page *rod.Page, siteSelectors []string) string {
	selectors := append(append([]string{}, siteSelectors...), genericTitleSelectors...)
	for _, sel := range selectors {
		els, err := page.Elements(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if text := elementText(el); strings.TrimSpace(text) != "" {
				return truncate(collapseWhitespace(text), maxTitleLength)
			}
		}
	}
	return ""
}

// extractPrice walks the price selector list in priority order and returns
// the first element whose text parses as a plausible price.
func (f *Fetcher) extractPrice(page *rod.Page, selectors []string) (float64, bool) {
	for _, sel := range selectors {
		els, err := page.Elements(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if price, ok := ParsePrice(elementText(el)); ok {
				return price, true
			}
		}
	}
	return 0, false
}

// priceWithin resolves a price inside one result container.
func priceWithin(container *rod.Element, selector string) (float64, bool) {
	els, err := container.Elements(selector)
	if err != nil {
		return 0, false
	}
	for _, el := range els {
		if price, ok := ParsePrice(elementText(el)); ok {
			return price, true
		}
	}
	return 0, false
}

// firstElementText returns the first non-empty text match among the
// selectors, scoped to the container.
func firstElementText(container *rod.Element, selectors []string) string {
	for _, sel := range selectors {
		if sel == "" {
			continue
		}
		els, err := container.Elements(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if text := elementText(el); strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	return ""
}

// elementText returns an element's visible text, falling back to the
// content attribute so meta tags (OpenGraph price/title) work too.
func elementText(el *rod.Element) string {
	text, err := el.Text()
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if attr, err := el.Attribute("content"); err == nil && attr != nil {
		return *attr
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
