package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto_signal_bot/internal/feature/scan/domain/entity"
)

var errTransport = errors.New("connection reset")

// mockMarketRepository is a mock implementation of the MarketRepository
// interface.
type mockMarketRepository struct {
	ListSymbolsFunc      func(ctx context.Context, quote string) ([]string, error)
	GetDailyCandlesFunc  func(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error)
	GetDailyCandlesCalls int
}

func (m *mockMarketRepository) ListSymbols(ctx context.Context, quote string) ([]string, error) {
	if m.ListSymbolsFunc != nil {
		return m.ListSymbolsFunc(ctx, quote)
	}
	return nil, errors.New("ListSymbolsFunc is not implemented")
}

func (m *mockMarketRepository) GetDailyCandles(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error) {
	m.GetDailyCandlesCalls++
	if m.GetDailyCandlesFunc != nil {
		return m.GetDailyCandlesFunc(ctx, symbol, start, end, limit)
	}
	return nil, errors.New("GetDailyCandlesFunc is not implemented")
}

// mockRateLimiter is a mock implementation of the RateLimiterInterface.
type mockRateLimiter struct {
	WaitIfNeededCalls int
}

func (m *mockRateLimiter) WaitIfNeeded() {
	m.WaitIfNeededCalls++
}

// matchingCandles yields 31 rising green candles, which always satisfy
// the entry predicate.
func matchingCandles(volume float64) []entity.Candle {
	closes := make([]float64, 31)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	cs := dailyCandles(closes)
	cs[len(cs)-1].Volume = volume
	return cs
}

// redLastCandles yields 31 candles whose last candle is red, so the
// predicate never holds.
func redLastCandles() []entity.Candle {
	cs := matchingCandles(1000)
	last := &cs[len(cs)-1]
	last.Open, last.Close = last.Close, last.Open
	return cs
}

func TestScanUsecase_Scan(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name            string
		symbols         []string
		listErr         error
		candlesFor      map[string][]entity.Candle
		fetchErrFor     map[string]error
		maxSymbols      int
		wantErr         bool
		wantMatches     []string
		wantSkipped     []string
		wantFetchCalls  int
	}{
		{
			name:    "success: matches ranked by volume descending",
			symbols: []string{"AAAUSDT", "BBBUSDT", "CCCUSDT"},
			candlesFor: map[string][]entity.Candle{
				"AAAUSDT": matchingCandles(100),
				"BBBUSDT": matchingCandles(900),
				"CCCUSDT": matchingCandles(500),
			},
			wantMatches:    []string{"BBBUSDT", "CCCUSDT", "AAAUSDT"},
			wantFetchCalls: 3,
		},
		{
			name:    "per-symbol fetch error is recorded, scan continues",
			symbols: []string{"AAAUSDT", "BBBUSDT", "CCCUSDT"},
			candlesFor: map[string][]entity.Candle{
				"AAAUSDT": matchingCandles(100),
				"CCCUSDT": matchingCandles(500),
			},
			fetchErrFor:    map[string]error{"BBBUSDT": errTransport},
			wantMatches:    []string{"CCCUSDT", "AAAUSDT"},
			wantSkipped:    []string{"BBBUSDT"},
			wantFetchCalls: 3,
		},
		{
			name:    "symbol listing failure aborts the scan",
			listErr: errTransport,
			wantErr: true,
		},
		{
			name:    "no data and no predicate hits give an empty valid result",
			symbols: []string{"AAAUSDT", "BBBUSDT"},
			candlesFor: map[string][]entity.Candle{
				"AAAUSDT": {},
				"BBBUSDT": redLastCandles(),
			},
			wantMatches:    []string{},
			wantFetchCalls: 2,
		},
		{
			name:    "maxSymbols caps the processed list",
			symbols: []string{"AAAUSDT", "BBBUSDT", "CCCUSDT"},
			candlesFor: map[string][]entity.Candle{
				"AAAUSDT": matchingCandles(100),
			},
			maxSymbols:     1,
			wantMatches:    []string{"AAAUSDT"},
			wantFetchCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			market := &mockMarketRepository{
				ListSymbolsFunc: func(ctx context.Context, quote string) ([]string, error) {
					if quote != "USDT" {
						t.Errorf("ListSymbols called with quote %q, want USDT", quote)
					}
					return tc.symbols, tc.listErr
				},
				GetDailyCandlesFunc: func(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error) {
					if err, ok := tc.fetchErrFor[symbol]; ok {
						return nil, err
					}
					return tc.candlesFor[symbol], nil
				},
			}
			limiter := &mockRateLimiter{}

			uc := NewScanUsecase(market, limiter)
			result, err := uc.Scan(ctx, "USDT", 30, tc.maxSymbols)

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if result != nil {
					t.Errorf("expected no result alongside the error, got %+v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Matches) != len(tc.wantMatches) {
				t.Fatalf("got %d matches, want %d", len(result.Matches), len(tc.wantMatches))
			}
			for i, want := range tc.wantMatches {
				if result.Matches[i].Symbol != want {
					t.Errorf("match %d = %s, want %s", i, result.Matches[i].Symbol, want)
				}
			}

			if len(result.Skipped) != len(tc.wantSkipped) {
				t.Fatalf("got %d skipped, want %d", len(result.Skipped), len(tc.wantSkipped))
			}
			for i, want := range tc.wantSkipped {
				if result.Skipped[i].Symbol != want {
					t.Errorf("skipped %d = %s, want %s", i, result.Skipped[i].Symbol, want)
				}
			}

			if market.GetDailyCandlesCalls != tc.wantFetchCalls {
				t.Errorf("GetDailyCandles called %d times, want %d", market.GetDailyCandlesCalls, tc.wantFetchCalls)
			}
			if limiter.WaitIfNeededCalls != tc.wantFetchCalls {
				t.Errorf("WaitIfNeeded called %d times, want %d", limiter.WaitIfNeededCalls, tc.wantFetchCalls)
			}
		})
	}
}

// The end passed to the repository is the exclusive bound of the half-open
// window [start, end); translating it to the exchange's inclusive wire
// parameters is the adapter's job. The last bar a repository may return
// opens one day before end, yesterday's fully closed bar.
func TestScanUsecase_WindowEndsAtYesterdaysClose(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 42, 7, 0, time.UTC)
	wantEnd := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	wantStart := wantEnd.AddDate(0, 0, -30)

	market := &mockMarketRepository{
		ListSymbolsFunc: func(ctx context.Context, quote string) ([]string, error) {
			return []string{"AAAUSDT"}, nil
		},
		GetDailyCandlesFunc: func(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error) {
			if !start.Equal(wantStart) {
				t.Errorf("start = %v, want %v", start, wantStart)
			}
			if !end.Equal(wantEnd) {
				t.Errorf("end = %v, want %v", end, wantEnd)
			}
			if limit != 31 {
				t.Errorf("limit = %d, want 31", limit)
			}
			return nil, nil
		},
	}

	uc := NewScanUsecase(market, &mockRateLimiter{})
	uc.now = func() time.Time { return now }

	if _, err := uc.Scan(context.Background(), "USDT", 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if market.GetDailyCandlesCalls != 1 {
		t.Errorf("GetDailyCandles called %d times, want 1", market.GetDailyCandlesCalls)
	}
}

func TestScanUsecase_DuplicateListedSymbols(t *testing.T) {
	market := &mockMarketRepository{
		ListSymbolsFunc: func(ctx context.Context, quote string) ([]string, error) {
			return []string{"AAAUSDT", "BBBUSDT", "AAAUSDT"}, nil
		},
		GetDailyCandlesFunc: func(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error) {
			return matchingCandles(1000), nil
		},
	}

	uc := NewScanUsecase(market, &mockRateLimiter{})

	result, err := uc.Scan(context.Background(), "USDT", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// At most one match per symbol per scan, even if the exchange metadata
	// repeats a symbol.
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(result.Matches), result.Matches)
	}
	seen := map[string]bool{}
	for _, m := range result.Matches {
		if seen[m.Symbol] {
			t.Errorf("symbol %s matched twice", m.Symbol)
		}
		seen[m.Symbol] = true
	}
	if result.Scanned != 2 {
		t.Errorf("Scanned = %d, want 2", result.Scanned)
	}
	if market.GetDailyCandlesCalls != 2 {
		t.Errorf("GetDailyCandles called %d times, want 2", market.GetDailyCandlesCalls)
	}
}

func TestScanUsecase_CancelledContext(t *testing.T) {
	market := &mockMarketRepository{
		ListSymbolsFunc: func(ctx context.Context, quote string) ([]string, error) {
			return []string{"AAAUSDT", "BBBUSDT"}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewScanUsecase(market, &mockRateLimiter{})
	if _, err := uc.Scan(ctx, "USDT", 30, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if market.GetDailyCandlesCalls != 0 {
		t.Errorf("no fetches expected after cancellation, got %d", market.GetDailyCandlesCalls)
	}
}
