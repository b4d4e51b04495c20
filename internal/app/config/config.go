// Package config loads the process configuration once at startup.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"crypto_signal_bot/internal/feature/scan/adapters/binance"
	"crypto_signal_bot/internal/platform/redis"
)

// Config is the full application configuration, loaded once in main and
// passed down read-only; nothing reads the environment after startup.
type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	DBPath        string `envconfig:"DB_PATH" default:"subscribers.db"`
	StatusAddr    string `envconfig:"STATUS_ADDR" default:":8080"`

	QuoteCurrency     string `envconfig:"QUOTE_CURRENCY" default:"USDT"`
	LookbackDays      int    `envconfig:"LOOKBACK_DAYS" default:"30"`
	DefaultNotifyTime string `envconfig:"DEFAULT_NOTIFY_TIME" default:"09:00"`

	// RateLimit is the number of exchange requests allowed per second;
	// 20/s matches the 50 ms inter-request spacing Binance tolerates.
	RateLimit int `envconfig:"RATE_LIMIT_PER_SECOND" default:"20"`

	Binance binance.Config
	Redis   redis.Config
}

// Load reads an optional .env file and the environment into a Config.
// A missing .env file is fine; production sets real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
