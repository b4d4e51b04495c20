package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crypto_signal_bot/internal/feature/scan/adapters/binance/dto"
	"crypto_signal_bot/internal/feature/scan/domain/entity"
	"crypto_signal_bot/internal/feature/scan/usecase"
)

// statusTrading is the exchange status of an actively tradable symbol.
const statusTrading = "TRADING"

// Market is the MarketRepository implementation backed by the Binance
// spot REST API.
type Market struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that Market implements the usecase interface.
var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket creates a Market with the given configuration and HTTP client.
func NewMarket(cfg Config, client *http.Client) *Market {
	return &Market{cfg: cfg, client: client}
}

// ListSymbols returns the symbols quoted in quote whose trading status is
// active, from the exchangeInfo metadata endpoint. Any failure here is
// fatal to a scan: without the symbol list there is nothing to process.
func (m *Market) ListSymbols(ctx context.Context, quote string) ([]string, error) {
	var body dto.ExchangeInfoResponse
	if err := m.getJSON(ctx, "/api/v3/exchangeInfo", nil, &body); err != nil {
		return nil, fmt.Errorf("exchange info: %w", err)
	}

	symbols := make([]string, 0, len(body.Symbols))
	for _, s := range body.Symbols {
		if s.QuoteAsset == quote && s.Status == statusTrading {
			symbols = append(symbols, s.Symbol)
		}
	}
	slog.Debug("listed symbols", "quote", quote, "count", len(symbols))
	return symbols, nil
}

// GetDailyCandles fetches up to limit daily candles for symbol with open
// times in [start, end). An empty slice is returned when the exchange has
// no data for the window; that is not an error.
func (m *Market) GetDailyCandles(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1d")
	q.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	// Binance filters klines by openTime >= startTime AND openTime <= endTime,
	// inclusive on both ends. The contract here is half-open [start, end), so
	// the end boundary moves back one millisecond; otherwise a daily bar
	// opening exactly at end (the running day's partial bar) would be included.
	q.Set("endTime", strconv.FormatInt(end.UnixMilli()-1, 10))
	q.Set("limit", strconv.Itoa(limit))

	var rows []dto.Kline
	if err := m.getJSON(ctx, "/api/v3/klines", q, &rows); err != nil {
		return nil, err
	}

	candles := make([]entity.Candle, 0, len(rows))
	for _, r := range rows {
		o, err := strconv.ParseFloat(r.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open %q: %w", r.Open, err)
		}
		h, err := strconv.ParseFloat(r.High, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high %q: %w", r.High, err)
		}
		l, err := strconv.ParseFloat(r.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low %q: %w", r.Low, err)
		}
		c, err := strconv.ParseFloat(r.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", r.Close, err)
		}
		v, err := strconv.ParseFloat(r.Volume, 64)
		if err != nil {
			return nil, fmt.Errorf("parse volume %q: %w", r.Volume, err)
		}

		candles = append(candles, entity.Candle{
			Time:   time.UnixMilli(r.OpenTime).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	return candles, nil
}

// getJSON issues a GET against the given API path and decodes the JSON
// response into out. Non-2xx responses are turned into errors carrying
// the Binance error payload when one is present.
func (m *Market) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := m.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var apiErr dto.APIError
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Msg != "" {
			return fmt.Errorf("binance http %d: %s (code %d)", res.StatusCode, apiErr.Msg, apiErr.Code)
		}
		return fmt.Errorf("binance http %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
