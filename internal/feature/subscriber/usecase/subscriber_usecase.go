// Package usecase implements subscriber management: subscriptions,
// per-user settings and notification bookkeeping.
package usecase

import (
	"context"
	"strconv"
	"time"

	"crypto_signal_bot/internal/feature/subscriber/domain/entity"
)

const (
	// SettingScanDays is the per-user candle lookback window, in days.
	SettingScanDays = "scan_days"
	// SettingNotifyTime is the per-user daily delivery time, "HH:MM".
	SettingNotifyTime = "notify_time"

	minScanDays = 30
	maxScanDays = 365
)

// SubscriberRepository abstracts the subscriber persistence layer.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type SubscriberRepository interface {
	// Upsert inserts or reactivates a subscriber.
	Upsert(ctx context.Context, sub entity.Subscriber) error
	// Deactivate soft-deletes a subscriber; settings are kept.
	Deactivate(ctx context.Context, chatID int64) error
	// ListActive returns all active subscribers.
	ListActive(ctx context.Context) ([]entity.Subscriber, error)
	// RecordNotification stores the time the last notification was sent.
	RecordNotification(ctx context.Context, chatID int64, at time.Time) error
	// GetSetting returns a setting value and whether it exists.
	GetSetting(ctx context.Context, chatID int64, name string) (string, bool, error)
	// SetSetting creates or replaces a setting value.
	SetSetting(ctx context.Context, chatID int64, name, value string) error
}

// SubscriberUsecase validates and coordinates subscriber operations.
type SubscriberUsecase struct {
	repo              SubscriberRepository
	defaultScanDays   int
	defaultNotifyTime string
}

// NewSubscriberUsecase creates a SubscriberUsecase. The defaults fill in
// for subscribers who never set their own preferences.
func NewSubscriberUsecase(repo SubscriberRepository, defaultScanDays int, defaultNotifyTime string) *SubscriberUsecase {
	return &SubscriberUsecase{
		repo:              repo,
		defaultScanDays:   defaultScanDays,
		defaultNotifyTime: defaultNotifyTime,
	}
}

// Subscribe registers (or reactivates) a chat for daily notifications.
func (su *SubscriberUsecase) Subscribe(ctx context.Context, chatID int64, username string) error {
	return su.repo.Upsert(ctx, entity.Subscriber{
		ChatID:       chatID,
		Username:     username,
		SubscribedAt: time.Now().UTC(),
	})
}

// Unsubscribe deactivates a chat. Its settings survive a resubscribe.
func (su *SubscriberUsecase) Unsubscribe(ctx context.Context, chatID int64) error {
	return su.repo.Deactivate(ctx, chatID)
}

// ListActive returns all active subscribers.
func (su *SubscriberUsecase) ListActive(ctx context.Context) ([]entity.Subscriber, error) {
	return su.repo.ListActive(ctx)
}

// RecordNotification stores the delivery time of the latest notification.
func (su *SubscriberUsecase) RecordNotification(ctx context.Context, chatID int64) error {
	return su.repo.RecordNotification(ctx, chatID, time.Now().UTC())
}

// SetNotifyTime validates and stores a subscriber's daily delivery time.
func (su *SubscriberUsecase) SetNotifyTime(ctx context.Context, chatID int64, value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return ErrInvalidNotifyTime
	}
	return su.repo.SetSetting(ctx, chatID, SettingNotifyTime, value)
}

// SetScanDays validates and stores a subscriber's lookback window.
func (su *SubscriberUsecase) SetScanDays(ctx context.Context, chatID int64, days int) error {
	if days < minScanDays || days > maxScanDays {
		return ErrInvalidScanDays
	}
	return su.repo.SetSetting(ctx, chatID, SettingScanDays, strconv.Itoa(days))
}

// Preferences returns a subscriber's effective settings, substituting the
// configured defaults for anything unset or unparsable.
func (su *SubscriberUsecase) Preferences(ctx context.Context, chatID int64) (entity.Preferences, error) {
	prefs := entity.Preferences{
		ScanDays:   su.defaultScanDays,
		NotifyTime: su.defaultNotifyTime,
	}

	if v, ok, err := su.repo.GetSetting(ctx, chatID, SettingScanDays); err != nil {
		return prefs, err
	} else if ok {
		if days, err := strconv.Atoi(v); err == nil && days >= minScanDays && days <= maxScanDays {
			prefs.ScanDays = days
		}
	}

	if v, ok, err := su.repo.GetSetting(ctx, chatID, SettingNotifyTime); err != nil {
		return prefs, err
	} else if ok {
		if _, err := time.Parse("15:04", v); err == nil {
			prefs.NotifyTime = v
		}
	}

	return prefs, nil
}
