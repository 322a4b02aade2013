package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the worker process.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Ranker   RankerConfig   `mapstructure:"ranker"`
	Server   ServerConfig   `mapstructure:"server"`
}

// DatabaseConfig identifies the persisted-store endpoint. Both values are
// required; the process refuses to start without them.
type DatabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// WorkerConfig controls the batch run: pacing between fetches and the
// price-history append policy.
type WorkerConfig struct {
	Mode             string        `mapstructure:"mode"`           // "once" or "daemon"
	IntervalHours    int           `mapstructure:"interval_hours"` // daemon re-run interval
	StoreDelay       time.Duration `mapstructure:"store_delay"`
	ProductDelay     time.Duration `mapstructure:"product_delay"`
	HistoryPolicy    string        `mapstructure:"history_policy"` // "on_change" or "always"
	MaxSearchResults int           `mapstructure:"max_search_results"`
}

// BrowserConfig bounds the headless-browser session.
type BrowserConfig struct {
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	SelectorTimeout   time.Duration `mapstructure:"selector_timeout"`
	RenderDelay       time.Duration `mapstructure:"render_delay"`
	Deadline          time.Duration `mapstructure:"deadline"` // outer hard deadline per fetch
}

// RankerConfig exposes the candidate-scoring weights and acceptance
// threshold as tunable values.
type RankerConfig struct {
	TitleWeight     float64 `mapstructure:"title_weight"`
	KeywordWeight   float64 `mapstructure:"keyword_weight"`
	PositionWeight  float64 `mapstructure:"position_weight"`
	PriceWeight     float64 `mapstructure:"price_weight"`
	AcceptThreshold float64 `mapstructure:"accept_threshold"`
}

// ServerConfig configures the optional read-only status server used in
// daemon mode.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// Load reads configuration from environment variables and an optional
// config file, falling back to built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SHOPSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The two required credentials keep their bare names for compatibility
	// with existing deployments.
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("database.service_key", "DATABASE_SERVICE_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; environment variables and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("worker.mode", "once")
	v.SetDefault("worker.interval_hours", 12)
	v.SetDefault("worker.store_delay", 3*time.Second)
	v.SetDefault("worker.product_delay", 5*time.Second)
	v.SetDefault("worker.history_policy", "on_change")
	v.SetDefault("worker.max_search_results", 10)

	v.SetDefault("browser.navigation_timeout", 30*time.Second)
	v.SetDefault("browser.selector_timeout", 10*time.Second)
	v.SetDefault("browser.render_delay", 2*time.Second)
	v.SetDefault("browser.deadline", 75*time.Second)

	v.SetDefault("ranker.title_weight", 0.4)
	v.SetDefault("ranker.keyword_weight", 0.3)
	v.SetDefault("ranker.position_weight", 0.2)
	v.SetDefault("ranker.price_weight", 0.1)
	v.SetDefault("ranker.accept_threshold", 0.3)

	v.SetDefault("server.enabled", true)
	v.SetDefault("server.port", "8080")
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Database.ServiceKey == "" {
		return fmt.Errorf("DATABASE_SERVICE_KEY is required")
	}
	if cfg.Worker.Mode != "once" && cfg.Worker.Mode != "daemon" {
		return fmt.Errorf("worker.mode must be \"once\" or \"daemon\", got %q", cfg.Worker.Mode)
	}
	if cfg.Worker.HistoryPolicy != "on_change" && cfg.Worker.HistoryPolicy != "always" {
		return fmt.Errorf("worker.history_policy must be \"on_change\" or \"always\", got %q", cfg.Worker.HistoryPolicy)
	}
	return nil
}

// ConnString builds the Postgres connection string, injecting the service
// credential when the endpoint URL does not already carry a password.
func (c *DatabaseConfig) ConnString() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return c.URL
	}
	if u.User == nil {
		u.User = url.UserPassword("postgres", c.ServiceKey)
	} else if _, has := u.User.Password(); !has {
		u.User = url.UserPassword(u.User.Username(), c.ServiceKey)
	}
	return u.String()
}
