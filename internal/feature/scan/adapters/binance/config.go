// Package binance provides a client for the Binance spot market-data API.
package binance

import "time"

// Config holds configuration for the Binance API client. Fields are
// populated from environment variables via envconfig when embedded in the
// application config.
type Config struct {
	BaseURL string        `envconfig:"BINANCE_BASE_URL" default:"https://api.binance.com"`
	Timeout time.Duration `envconfig:"BINANCE_TIMEOUT" default:"10s"`
}
