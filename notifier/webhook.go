// Package notifier delivers price-drop alerts to user-configured Discord
// webhooks. Delivery is best effort: a failed webhook never fails the
// check cycle that triggered it.
package notifier

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const embedColorGreen = 0x2ecc71

// PriceDropAlert carries everything needed to render one alert message.
type PriceDropAlert struct {
	ProductName string
	ProductURL  string
	OldPrice    float64
	NewPrice    float64
	Currency    string
	Username    string
	AvatarURL   string
}

// Savings returns the absolute price drop.
func (a PriceDropAlert) Savings() float64 {
	return a.OldPrice - a.NewPrice
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields"`
	Timestamp   string              `json:"timestamp"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordPayload struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []discordEmbed `json:"embeds"`
}

// WebhookNotifier posts Discord webhook messages.
type WebhookNotifier struct {
	client *resty.Client
}

// NewWebhookNotifier creates a notifier with a bounded HTTP client.
func NewWebhookNotifier() *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &WebhookNotifier{client: client}
}

// NotifyPriceDrop posts a price-drop embed to the given webhook URL.
func (n *WebhookNotifier) NotifyPriceDrop(webhookURL string, alert PriceDropAlert) error {
	if webhookURL == "" {
		return nil
	}

	username := alert.Username
	if username == "" {
		username = "ShopScout"
	}

	payload := discordPayload{
		Username:  username,
		AvatarURL: alert.AvatarURL,
		Embeds: []discordEmbed{
			{
				Title:       fmt.Sprintf("Price drop: %s", alert.ProductName),
				URL:         alert.ProductURL,
				Description: fmt.Sprintf("Now %.2f %s, down from %.2f %s", alert.NewPrice, alert.Currency, alert.OldPrice, alert.Currency),
				Color:       embedColorGreen,
				Fields: []discordEmbedField{
					{Name: "Old price", Value: fmt.Sprintf("%.2f %s", alert.OldPrice, alert.Currency), Inline: true},
					{Name: "New price", Value: fmt.Sprintf("%.2f %s", alert.NewPrice, alert.Currency), Inline: true},
					{Name: "You save", Value: fmt.Sprintf("%.2f %s", alert.Savings(), alert.Currency), Inline: true},
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(webhookURL)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %v", err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
