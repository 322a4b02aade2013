package repository

import (
	"fmt"

	"shopscout/database"
	"shopscout/models"
)

type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// GetSettings returns the settings row for a user, or nil when the user
// has never saved any. Callers treat nil as "defaults, no webhook".
func (r *SettingsRepository) GetSettings(userID string) (*models.UserSettings, error) {
	query := `
		SELECT id, COALESCE(discord_webhook, ''), check_frequency,
		       COALESCE(default_currency, 'USD'), COALESCE(username, ''), COALESCE(avatar_url, '')
		FROM user_settings
		WHERE id = $1
	`

	var settings models.UserSettings
	err := database.DB.QueryRow(query, userID).Scan(
		&settings.ID, &settings.DiscordWebhook, &settings.CheckFrequency,
		&settings.DefaultCurrency, &settings.Username, &settings.AvatarURL,
	)

	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil // user never saved settings
		}
		return nil, fmt.Errorf("failed to get user settings: %v", err)
	}

	return &settings, nil
}
