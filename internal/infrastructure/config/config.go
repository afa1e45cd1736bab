// Package config loads application settings from a .env file and the
// environment, with sensible defaults for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config contains every tunable of the process.
type Config struct {
	ServerAddr string
	DBPath     string
	ReceiptDir string
	LogLevel   string

	RateFeedURL         string
	RateFeedTimeout     time.Duration
	TrackedCurrencies   []string
	RateRefreshInterval time.Duration

	AccrualCheckInterval  time.Duration
	AccrualMonthlyPercent decimal.Decimal
	AccrualWindow         time.Duration
}

// Load reads configuration from .env (when present) and the environment.
func Load() (*Config, error) {
	// A missing .env is fine: plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		DBPath:     getEnv("DB_PATH", "data"),
		ReceiptDir: getEnv("RECEIPT_DIR", "check"),
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),

		RateFeedURL:         getEnv("RATE_FEED_URL", "https://api.nbrb.by/exrates/rates"),
		RateFeedTimeout:     getDuration("RATE_FEED_TIMEOUT", 10*time.Second),
		TrackedCurrencies:   getList("TRACKED_CURRENCIES", []string{"USD", "EUR", "RUB"}),
		RateRefreshInterval: getDuration("RATE_REFRESH_INTERVAL", 6*time.Hour),

		AccrualCheckInterval: getDuration("ACCRUAL_CHECK_INTERVAL", 30*time.Second),
		AccrualWindow:        getDuration("ACCRUAL_WINDOW", 10*time.Minute),
	}

	pct, err := decimal.NewFromString(getEnv("ACCRUAL_MONTHLY_PERCENT", "1.0"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_MONTHLY_PERCENT: %w", err)
	}
	cfg.AccrualMonthlyPercent = pct

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, strings.ToUpper(p))
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
