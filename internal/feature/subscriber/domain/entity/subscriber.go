// Package entity defines the domain models for the subscriber feature.
package entity

import "time"

// Subscriber is a chat the bot delivers scheduled scan results to.
type Subscriber struct {
	ChatID           int64  // Chat identifier, the subscriber's primary key
	Username         string // Display name, may be empty
	SubscribedAt     time.Time
	LastNotification *time.Time // Nil until the first notification is sent
}

// Preferences are the per-subscriber scan settings, persisted as settings
// rows and re-read on every scheduling cycle.
type Preferences struct {
	ScanDays   int    // Candle lookback window in days
	NotifyTime string // Daily delivery time "HH:MM", bot-local
}
