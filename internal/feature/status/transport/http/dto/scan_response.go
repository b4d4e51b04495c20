// Package dto defines the JSON responses of the status API.
package dto

import "time"

// MatchItem is one ranked match in the latest-scan response.
type MatchItem struct {
	Symbol   string  `json:"symbol"`
	Close    float64 `json:"close"`
	Date     string  `json:"date"`
	MA28     float64 `json:"ma28"`
	StopLoss float64 `json:"stop_loss"`
	RiskPct  float64 `json:"risk_pct"`
	Volume   float64 `json:"volume"`
}

// LatestScanResponse summarises the most recent completed scan.
type LatestScanResponse struct {
	Quote     string      `json:"quote"`
	ScannedAt time.Time   `json:"scanned_at"`
	Scanned   int         `json:"scanned"`
	Skipped   int         `json:"skipped"`
	Matches   []MatchItem `json:"matches"`
}

// SubscribersResponse reports the number of active subscribers.
type SubscribersResponse struct {
	Active int `json:"active"`
}
