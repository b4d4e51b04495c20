package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crypto_signal_bot/internal/feature/scan/domain/entity"
	"crypto_signal_bot/internal/shared/ratelimiter"
)

const (
	// DefaultLookbackDays is the candle window length when the caller does
	// not ask for a specific one. 30 daily bars plus the window-edge bar is
	// just enough to establish the 28-period average on the latest candles.
	DefaultLookbackDays = 30
	// MaxKlineLimit is the upper bound the exchange puts on a single
	// klines request.
	MaxKlineLimit = 1000
)

// MarketRepository abstracts the exchange's market-data REST surface.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type MarketRepository interface {
	// ListSymbols returns the tradable symbols quoted in the given currency.
	ListSymbols(ctx context.Context, quote string) ([]string, error)
	// GetDailyCandles returns up to limit daily candles in [start, end).
	// An empty slice is a valid result for a symbol with no data.
	GetDailyCandles(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error)
}

// ScanUsecase drives the pipeline end to end for one quote currency:
// list symbols, fetch candles per symbol, build the series, evaluate the
// entry predicate, rank the matches. It holds no cross-scan state; every
// invocation produces a fresh ScanResult.
type ScanUsecase struct {
	market  MarketRepository
	limiter ratelimiter.RateLimiterInterface
	now     func() time.Time // injectable clock for tests
}

// NewScanUsecase creates a ScanUsecase backed by the given market
// repository and rate limiter.
func NewScanUsecase(market MarketRepository, limiter ratelimiter.RateLimiterInterface) *ScanUsecase {
	return &ScanUsecase{market: market, limiter: limiter, now: time.Now}
}

// window returns the candle window: it ends at the start of the current
// UTC day, so the last fetched bar is yesterday's fully closed daily bar,
// and starts lookbackDays earlier. Partial bars for the running day are
// deliberately excluded.
func (su *ScanUsecase) window(lookbackDays int) (start, end time.Time, limit int) {
	end = su.now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(0, 0, -lookbackDays)
	limit = lookbackDays + 1
	if limit > MaxKlineLimit {
		limit = MaxKlineLimit
	}
	return start, end, limit
}

// dedupeSymbols drops repeated symbols, keeping first-encounter order.
// The exchange metadata should never repeat a symbol, but at most one
// match per symbol per scan must not depend on that.
func dedupeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := symbols[:0]
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Scan runs one full scan for the given quote currency. lookbackDays <= 0
// falls back to DefaultLookbackDays; maxSymbols > 0 caps the number of
// symbols processed, for bounded or test runs.
//
// Only a symbol-listing failure aborts the scan. Per-symbol failures
// (fetch, parse, degenerate stop-loss) are logged, recorded in the
// result's Skipped list and excluded; the scan continues. An empty
// Matches slice with a nil error means "no pairs currently match" and is
// a valid outcome, distinct from a failed scan.
func (su *ScanUsecase) Scan(ctx context.Context, quote string, lookbackDays, maxSymbols int) (*entity.ScanResult, error) {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	startedAt := su.now().UTC()
	symbols, err := su.market.ListSymbols(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("list %s symbols: %w", quote, err)
	}
	symbols = dedupeSymbols(symbols)
	if maxSymbols > 0 && len(symbols) > maxSymbols {
		symbols = symbols[:maxSymbols]
	}
	slog.Info("scan started", "quote", quote, "symbols", len(symbols), "lookback_days", lookbackDays)

	start, end, limit := su.window(lookbackDays)

	result := &entity.ScanResult{Quote: quote, ScannedAt: startedAt, Scanned: len(symbols)}
	var matches []entity.SignalMatch
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		su.limiter.WaitIfNeeded()

		candles, err := su.market.GetDailyCandles(ctx, symbol, start, end, limit)
		if err != nil {
			ferr := &FetchError{Symbol: symbol, Err: err}
			slog.Warn("symbol skipped", "symbol", symbol, "error", err)
			result.Skipped = append(result.Skipped, entity.SkippedSymbol{Symbol: symbol, Reason: ferr.Error()})
			continue
		}
		if len(candles) == 0 {
			continue
		}

		match, err := Evaluate(BuildSeries(symbol, candles))
		if err != nil {
			slog.Warn("symbol skipped", "symbol", symbol, "error", err)
			result.Skipped = append(result.Skipped, entity.SkippedSymbol{Symbol: symbol, Reason: err.Error()})
			continue
		}
		if match != nil {
			matches = append(matches, *match)
		}
	}

	// All matches are collected before ranking, so the ordering is
	// independent of fetch completion order.
	result.Matches = Rank(matches)
	slog.Info("scan finished", "quote", quote, "matches", len(result.Matches), "skipped", len(result.Skipped))
	return result, nil
}
