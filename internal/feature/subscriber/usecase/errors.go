package usecase

import "errors"

var (
	// ErrInvalidNotifyTime is returned for a notification time that is not
	// a valid "HH:MM" 24-hour clock value.
	ErrInvalidNotifyTime = errors.New("notification time must be HH:MM (24h)")
	// ErrInvalidScanDays is returned for a lookback window outside the
	// accepted bounds.
	ErrInvalidScanDays = errors.New("scan days must be between 30 and 365")
)
