package scraper

import (
	"regexp"
	"strings"
)

// BotDetector spots bot walls and CAPTCHA interstitials in fetched page
// content. A detected wall is reported as "no result" by the fetcher,
// never as a distinct error class, because at this layer it is
// indistinguishable from any other failed scrape.
type BotDetector struct {
	wallPatterns    []*regexp.Regexp
	captchaPatterns []*regexp.Regexp
}

// NewBotDetector creates a detector with the known wall fingerprints.
func NewBotDetector() *BotDetector {
	return &BotDetector{
		wallPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)access denied`),
			regexp.MustCompile(`(?i)unfortunately we are unable`),
			regexp.MustCompile(`(?i)checking your browser`),
			regexp.MustCompile(`(?i)ddos protection`),
			regexp.MustCompile(`(?i)too many requests`),
			regexp.MustCompile(`(?i)rate limit`),
			regexp.MustCompile(`(?i)security check`),
			regexp.MustCompile(`(?i)403 forbidden`),
			regexp.MustCompile(`(?i)503 service unavailable`),
		},
		captchaPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)captcha`),
			regexp.MustCompile(`(?i)verify you are human`),
			regexp.MustCompile(`(?i)select all images`),
		},
	}
}

// Blocked reports whether the page content looks like a bot wall, and the
// matched fingerprint when it does.
func (bd *BotDetector) Blocked(pageContent, pageTitle string) (bool, string) {
	content := strings.ToLower(pageContent + " " + pageTitle)

	score := 0.0
	reasons := []string{}

	for _, pattern := range bd.captchaPatterns {
		if pattern.MatchString(content) {
			score += 0.5
			reasons = append(reasons, "captcha: "+pattern.String())
		}
	}
	for _, pattern := range bd.wallPatterns {
		if pattern.MatchString(content) {
			score += 0.3
			reasons = append(reasons, pattern.String())
		}
	}

	// A near-empty page with any wall indicator is almost certainly blocked.
	if len(content) < 1000 && score > 0 {
		score += 0.2
	}

	return score > 0.3, strings.Join(reasons, "; ")
}
