// Package dto defines data transfer objects for the Binance API responses.
package dto

// ExchangeInfoResponse represents the JSON response from the Binance
// /api/v3/exchangeInfo endpoint, reduced to the fields the scanner reads.
type ExchangeInfoResponse struct {
	Symbols []struct {
		Symbol     string `json:"symbol"`
		Status     string `json:"status"`
		QuoteAsset string `json:"quoteAsset"`
	} `json:"symbols"`
}

// APIError represents the JSON error payload Binance returns alongside
// non-2xx status codes.
type APIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
