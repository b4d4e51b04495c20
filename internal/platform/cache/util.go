package cache

import "time"

// TimeUntilNextUTCMidnight returns the duration from now until five
// minutes past the next UTC midnight. The grace period lets the exchange
// finish closing the daily bar before cached windows expire.
func TimeUntilNextUTCMidnight(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, time.UTC)
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
