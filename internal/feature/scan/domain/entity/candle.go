// Package entity defines the domain models for the scan feature.
package entity

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) daily
// observation for a trading pair. Immutable once fetched.
type Candle struct {
	Time   time.Time // Start of the daily period, UTC
	Open   float64   // Opening price
	High   float64   // Highest price during the period
	Low    float64   // Lowest price during the period
	Close  float64   // Closing price
	Volume float64   // Traded volume, denominated in the base asset
}

// Bar is a Candle annotated with the fields derived once at series build
// time. MA28 is only meaningful when MAValid is true, i.e. once at least
// 28 candles feed the trailing window.
type Bar struct {
	Candle
	IsGreen bool    // Close > Open
	MA28    float64 // Trailing 28-sample simple moving average of Close
	MAValid bool
}

// Series is the ordered per-symbol time series, strictly increasing by
// timestamp with no duplicates. Derived fields are computed exactly once;
// nothing downstream mutates a built series.
type Series struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars in the series.
func (s Series) Len() int { return len(s.Bars) }

// Last returns the bar at offset n from the end (0 = most recent).
// The caller must ensure the series is long enough.
func (s Series) Last(n int) Bar { return s.Bars[len(s.Bars)-1-n] }
