// Package usecase runs scans on behalf of subscribers and delivers the
// results through the notification channel.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	scanentity "crypto_signal_bot/internal/feature/scan/domain/entity"
	subentity "crypto_signal_bot/internal/feature/subscriber/domain/entity"
)

// Scanner abstracts the scan orchestrator.
type Scanner interface {
	Scan(ctx context.Context, quote string, lookbackDays, maxSymbols int) (*scanentity.ScanResult, error)
}

// Notifier abstracts the chat delivery channel. Send failures are logged
// by the caller, never propagated into scan state.
type Notifier interface {
	SendMessage(chatID int64, text string) error
}

// SubscriberService is the slice of subscriber management this usecase
// needs: effective preferences and notification bookkeeping.
type SubscriberService interface {
	Preferences(ctx context.Context, chatID int64) (subentity.Preferences, error)
	RecordNotification(ctx context.Context, chatID int64) error
}

// Publisher receives each completed scan result, e.g. for the status API.
type Publisher interface {
	Publish(*scanentity.ScanResult)
}

// NotifyUsecase runs one scan per subscriber and sends the ranked result.
type NotifyUsecase struct {
	scanner   Scanner
	notifier  Notifier
	subs      SubscriberService
	publisher Publisher
	quote     string
}

// NewNotifyUsecase creates a NotifyUsecase scanning pairs quoted in
// quote. publisher may be nil when nothing consumes scan snapshots.
func NewNotifyUsecase(scanner Scanner, notifier Notifier, subs SubscriberService, publisher Publisher, quote string) *NotifyUsecase {
	return &NotifyUsecase{
		scanner:   scanner,
		notifier:  notifier,
		subs:      subs,
		publisher: publisher,
		quote:     quote,
	}
}

// NotifySubscriber runs a scan with the subscriber's preferences and
// delivers the rendered result. The scan error (total inability to list
// symbols) is reported to the subscriber and returned; delivery failures
// are only logged.
func (nu *NotifyUsecase) NotifySubscriber(ctx context.Context, chatID int64) error {
	prefs, err := nu.subs.Preferences(ctx, chatID)
	if err != nil {
		return fmt.Errorf("load preferences for %d: %w", chatID, err)
	}

	result, err := nu.scanner.Scan(ctx, nu.quote, prefs.ScanDays, 0)
	if err != nil {
		nu.send(chatID, "❌ Scan failed, will retry at the next scheduled run.")
		return fmt.Errorf("scan for %d: %w", chatID, err)
	}
	if nu.publisher != nil {
		nu.publisher.Publish(result)
	}

	nu.send(chatID, RenderResult(result))

	if err := nu.subs.RecordNotification(ctx, chatID); err != nil {
		slog.Error("failed to record notification", "chat_id", chatID, "error", err)
	}
	return nil
}

func (nu *NotifyUsecase) send(chatID int64, text string) {
	if err := nu.notifier.SendMessage(chatID, text); err != nil {
		slog.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}
