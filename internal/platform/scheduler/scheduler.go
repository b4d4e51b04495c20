// Package scheduler triggers the daily per-subscriber scans.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	subentity "crypto_signal_bot/internal/feature/subscriber/domain/entity"
)

// scanTimeout bounds one scheduled scan-and-notify run. A full scan of an
// exchange is a few hundred rate-limited requests, minutes not hours.
const scanTimeout = 15 * time.Minute

// SubscriberSource lists subscribers and their schedule preferences.
type SubscriberSource interface {
	ListActive(ctx context.Context) ([]subentity.Subscriber, error)
	Preferences(ctx context.Context, chatID int64) (subentity.Preferences, error)
}

// Runner executes one scan-and-notify cycle for a subscriber.
type Runner interface {
	NotifySubscriber(ctx context.Context, chatID int64) error
}

// Scheduler keeps one daily cron entry per active subscriber. Entries are
// rebuilt from the persisted settings on every Reload, so the schedule
// never drifts from the store: the store is the only source of truth.
type Scheduler struct {
	cron   *cron.Cron
	subs   SubscriberSource
	runner Runner

	mu      sync.Mutex
	entries []cron.EntryID
}

// New creates a stopped Scheduler; call Reload then Start.
func New(subs SubscriberSource, runner Runner) *Scheduler {
	return &Scheduler{cron: cron.New(), subs: subs, runner: runner}
}

// Reload replaces all scheduled jobs with one daily job per active
// subscriber at that subscriber's preferred notification time. A
// subscriber with a broken stored time is skipped and logged, not fatal.
func (s *Scheduler) Reload(ctx context.Context) error {
	subscribers, err := s.subs.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	for _, sub := range subscribers {
		prefs, err := s.subs.Preferences(ctx, sub.ChatID)
		if err != nil {
			slog.Error("failed to load preferences, skipping schedule", "chat_id", sub.ChatID, "error", err)
			continue
		}
		spec, err := dailySpec(prefs.NotifyTime)
		if err != nil {
			slog.Error("invalid notification time, skipping schedule", "chat_id", sub.ChatID, "time", prefs.NotifyTime, "error", err)
			continue
		}

		chatID := sub.ChatID
		id, err := s.cron.AddFunc(spec, func() { s.run(chatID) })
		if err != nil {
			slog.Error("failed to schedule subscriber", "chat_id", chatID, "error", err)
			continue
		}
		s.entries = append(s.entries, id)
	}

	slog.Info("schedule reloaded", "jobs", len(s.entries))
	return nil
}

// Start begins executing scheduled jobs in the cron's own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if err := s.runner.NotifySubscriber(ctx, chatID); err != nil {
		slog.Error("scheduled scan failed", "chat_id", chatID, "error", err)
	}
}

// dailySpec converts "HH:MM" into the cron spec for a daily run.
func dailySpec(notifyTime string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(notifyTime))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
