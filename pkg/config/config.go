// Package config loads all runtime settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"stylehunt/pkg/logger"
)

// Config is the full runtime configuration, processed from environment
// variables by envconfig.
type Config struct {
	Port string `envconfig:"PORT" default:"9090"`

	// EnableLiveSearch gates all outbound vendor calls. When false every
	// adapter serves deterministic sample data regardless of credentials.
	EnableLiveSearch bool `envconfig:"ENABLE_LIVE_SEARCH" default:"false"`

	// MaxPlatformsPerRequest caps how many platforms one query may fan out
	// to, bounding upstream load per request.
	MaxPlatformsPerRequest int `envconfig:"MAX_PLATFORMS_PER_REQUEST" default:"5"`

	CacheDBPath     string `envconfig:"CACHE_DB_PATH" default:"./cache.db"`
	CacheTTLMinutes int    `envconfig:"CACHE_TTL_MINUTES" default:"1440"`
	RedisAddr       string `envconfig:"REDIS_ADDR"`

	Ebay    EbayConfig
	Walmart WalmartConfig
	Amazon  AmazonConfig
	Etsy    EtsyConfig
}

type EbayConfig struct {
	AppID string `envconfig:"EBAY_APP_ID"`
	// Finding API quota settings.
	DailyLimit    int `envconfig:"EBAY_DAILY_LIMIT" default:"500"`
	MinIntervalMs int `envconfig:"EBAY_MIN_INTERVAL_MS" default:"2000"`
}

type WalmartConfig struct {
	APIKey string `envconfig:"WALMART_API_KEY"`
}

type AmazonConfig struct {
	AccessKey  string `envconfig:"AMAZON_ACCESS_KEY"`
	SecretKey  string `envconfig:"AMAZON_SECRET_KEY"`
	PartnerTag string `envconfig:"AMAZON_PARTNER_TAG"`
}

type EtsyConfig struct {
	APIKey string `envconfig:"ETSY_API_KEY"`
}

// Load reads .env if present, then processes the environment. A missing
// .env is not an error; credentials may come from the real environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		logger.Debug().Msg("no .env file, using process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsConfigured reports whether a credential value is usable: non-empty and
// not a template placeholder (the sample .env ships values like
// "your_actual_ebay_app_id_here").
func IsConfigured(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	for _, marker := range []string{"your_", "_here", "changeme", "placeholder", "xxx"} {
		if strings.Contains(v, marker) {
			return false
		}
	}
	return true
}

func (c EbayConfig) Configured() bool { return IsConfigured(c.AppID) }

func (c WalmartConfig) Configured() bool { return IsConfigured(c.APIKey) }

func (c AmazonConfig) Configured() bool {
	return IsConfigured(c.AccessKey) && IsConfigured(c.SecretKey) && IsConfigured(c.PartnerTag)
}

func (c EtsyConfig) Configured() bool { return IsConfigured(c.APIKey) }
