package entity

import "time"

// SignalMatch is emitted for a symbol whose series satisfies the entry
// predicate: two consecutive green daily candles with the latest close
// above the 28-period moving average. One per symbol per scan.
type SignalMatch struct {
	Symbol   string
	Close    float64   // Close of the latest bar
	Time     time.Time // Timestamp of the latest bar
	MA28     float64   // Moving average at the latest bar
	StopLoss float64   // Lower of the last two bars' lows
	RiskPct  float64   // (Close/StopLoss - 1) * 100
	Volume   float64   // Volume of the latest bar
}

// SkippedSymbol records a symbol excluded from a scan together with the
// reason, for observability. Skips never abort a scan.
type SkippedSymbol struct {
	Symbol string
	Reason string
}

// ScanResult is the outcome of one completed scan: matches sorted by
// volume descending, plus the symbols that were skipped along the way.
// Built fresh each run and never mutated afterwards; the next run
// supersedes it rather than merging into it.
type ScanResult struct {
	Quote     string    // Quote currency the scan filtered on
	ScannedAt time.Time // When the scan started
	Scanned   int       // Number of symbols processed
	Matches   []SignalMatch
	Skipped   []SkippedSymbol
}
