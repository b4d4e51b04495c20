package dto

import (
	"encoding/json"
	"fmt"
)

// Kline represents one row of the Binance /api/v3/klines response. The
// wire format is a heterogeneous JSON array; only the leading OHLCV
// fields are kept, the rest (close time, quote volume, trade count, ...)
// are ignored.
type Kline struct {
	OpenTime int64  // Milliseconds since epoch, UTC
	Open     string // Prices and volume arrive as decimal strings
	High     string
	Low      string
	Close    string
	Volume   string
}

// UnmarshalJSON decodes the positional kline array into named fields.
func (k *Kline) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) < 6 {
		return fmt.Errorf("kline row has %d fields, want at least 6", len(raw))
	}
	if err := json.Unmarshal(raw[0], &k.OpenTime); err != nil {
		return fmt.Errorf("parse open time: %w", err)
	}
	for i, dst := range []*string{&k.Open, &k.High, &k.Low, &k.Close, &k.Volume} {
		if err := json.Unmarshal(raw[i+1], dst); err != nil {
			return fmt.Errorf("parse kline field %d: %w", i+1, err)
		}
	}
	return nil
}
