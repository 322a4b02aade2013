package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with required credentials", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db.example.com:5432/shopscout")
		t.Setenv("DATABASE_SERVICE_KEY", "secret-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "once", cfg.Worker.Mode)
		assert.Equal(t, 12, cfg.Worker.IntervalHours)
		assert.Equal(t, 3*time.Second, cfg.Worker.StoreDelay)
		assert.Equal(t, 5*time.Second, cfg.Worker.ProductDelay)
		assert.Equal(t, "on_change", cfg.Worker.HistoryPolicy)
		assert.Equal(t, 10, cfg.Worker.MaxSearchResults)

		assert.Equal(t, 30*time.Second, cfg.Browser.NavigationTimeout)
		assert.Equal(t, 75*time.Second, cfg.Browser.Deadline)

		assert.InDelta(t, 0.4, cfg.Ranker.TitleWeight, 1e-9)
		assert.InDelta(t, 0.3, cfg.Ranker.AcceptThreshold, 1e-9)

		assert.True(t, cfg.Server.Enabled)
		assert.Equal(t, "8080", cfg.Server.Port)
	})

	t.Run("missing database url fails", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DATABASE_SERVICE_KEY", "secret-key")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("missing service key fails", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db.example.com:5432/shopscout")
		t.Setenv("DATABASE_SERVICE_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_SERVICE_KEY")
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db.example.com:5432/shopscout")
		t.Setenv("DATABASE_SERVICE_KEY", "secret-key")
		t.Setenv("SHOPSCOUT_WORKER_MODE", "daemon")
		t.Setenv("SHOPSCOUT_WORKER_HISTORY_POLICY", "always")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "daemon", cfg.Worker.Mode)
		assert.Equal(t, "always", cfg.Worker.HistoryPolicy)
	})

	t.Run("invalid mode is rejected", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db.example.com:5432/shopscout")
		t.Setenv("DATABASE_SERVICE_KEY", "secret-key")
		t.Setenv("SHOPSCOUT_WORKER_MODE", "forever")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "worker.mode")
	})
}

func TestConnString(t *testing.T) {
	t.Run("injects credentials when absent", func(t *testing.T) {
		db := DatabaseConfig{URL: "postgres://db.example.com:5432/shopscout", ServiceKey: "sk"}
		assert.Equal(t, "postgres://postgres:sk@db.example.com:5432/shopscout", db.ConnString())
	})

	t.Run("keeps existing username", func(t *testing.T) {
		db := DatabaseConfig{URL: "postgres://worker@db.example.com:5432/shopscout", ServiceKey: "sk"}
		assert.Equal(t, "postgres://worker:sk@db.example.com:5432/shopscout", db.ConnString())
	})

	t.Run("existing password wins", func(t *testing.T) {
		db := DatabaseConfig{URL: "postgres://worker:pw@db.example.com:5432/shopscout", ServiceKey: "sk"}
		assert.Equal(t, db.URL, db.ConnString())
	})
}
