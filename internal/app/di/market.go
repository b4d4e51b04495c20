// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"crypto_signal_bot/internal/feature/scan/adapters/binance"
	scanusecase "crypto_signal_bot/internal/feature/scan/usecase"
	"crypto_signal_bot/internal/platform/cache"
	infrahttp "crypto_signal_bot/internal/platform/http"
	"crypto_signal_bot/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured Binance market client.
func NewMarket(cfg binance.Config) *binance.Market {
	return binance.NewMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewScanUsecase builds the scan orchestrator on top of the market
// client, optionally wrapped with the Redis candle cache (rdb may be
// nil), throttled to ratePerSecond exchange requests.
func NewScanUsecase(cfg binance.Config, rdb *redisv9.Client, ratePerSecond int) *scanusecase.ScanUsecase {
	var market scanusecase.MarketRepository = NewMarket(cfg)
	if rdb != nil {
		market = cache.NewCachingMarketRepository(rdb, market, "klines")
	}
	limiter := ratelimiter.NewRateLimiter(ratePerSecond, time.Second)
	return scanusecase.NewScanUsecase(market, limiter)
}
