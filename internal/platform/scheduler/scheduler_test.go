package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	subentity "crypto_signal_bot/internal/feature/subscriber/domain/entity"
)

type mockSubscriberSource struct {
	ListActiveFunc  func(ctx context.Context) ([]subentity.Subscriber, error)
	PreferencesFunc func(ctx context.Context, chatID int64) (subentity.Preferences, error)
}

func (m *mockSubscriberSource) ListActive(ctx context.Context) ([]subentity.Subscriber, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, errors.New("ListActiveFunc is not implemented")
}

func (m *mockSubscriberSource) Preferences(ctx context.Context, chatID int64) (subentity.Preferences, error) {
	if m.PreferencesFunc != nil {
		return m.PreferencesFunc(ctx, chatID)
	}
	return subentity.Preferences{}, errors.New("PreferencesFunc is not implemented")
}

type mockRunner struct {
	NotifyCalls []int64
}

func (m *mockRunner) NotifySubscriber(ctx context.Context, chatID int64) error {
	m.NotifyCalls = append(m.NotifyCalls, chatID)
	return nil
}

func subscribers(chatIDs ...int64) []subentity.Subscriber {
	subs := make([]subentity.Subscriber, 0, len(chatIDs))
	for _, id := range chatIDs {
		subs = append(subs, subentity.Subscriber{ChatID: id, SubscribedAt: time.Now()})
	}
	return subs
}

func TestDailySpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		notifyTime string
		want       string
		wantErr    bool
	}{
		{name: "morning", notifyTime: "09:30", want: "30 9 * * *"},
		{name: "midnight", notifyTime: "00:00", want: "0 0 * * *"},
		{name: "late evening", notifyTime: "23:59", want: "59 23 * * *"},
		{name: "surrounding whitespace", notifyTime: " 07:15 ", want: "15 7 * * *"},
		{name: "hour out of range", notifyTime: "25:00", wantErr: true},
		{name: "not a time", notifyTime: "soon", wantErr: true},
		{name: "empty", notifyTime: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dailySpec(tt.notifyTime)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("dailySpec(%q) expected an error, got %q", tt.notifyTime, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("dailySpec(%q) unexpected error: %v", tt.notifyTime, err)
			}
			if got != tt.want {
				t.Errorf("dailySpec(%q) = %q, want %q", tt.notifyTime, got, tt.want)
			}
		})
	}
}

func TestScheduler_Reload(t *testing.T) {
	t.Parallel()

	source := &mockSubscriberSource{
		ListActiveFunc: func(ctx context.Context) ([]subentity.Subscriber, error) {
			return subscribers(1, 2, 3), nil
		},
		PreferencesFunc: func(ctx context.Context, chatID int64) (subentity.Preferences, error) {
			return subentity.Preferences{ScanDays: 30, NotifyTime: "09:00"}, nil
		},
	}

	s := New(source, &mockRunner{})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.entries) != 3 {
		t.Errorf("expected 3 scheduled jobs, got %d", len(s.entries))
	}
}

func TestScheduler_Reload_ReplacesPreviousEntries(t *testing.T) {
	t.Parallel()

	active := subscribers(1, 2, 3)
	source := &mockSubscriberSource{
		ListActiveFunc: func(ctx context.Context) ([]subentity.Subscriber, error) {
			return active, nil
		},
		PreferencesFunc: func(ctx context.Context, chatID int64) (subentity.Preferences, error) {
			return subentity.Preferences{ScanDays: 30, NotifyTime: "09:00"}, nil
		},
	}

	s := New(source, &mockRunner{})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One subscriber left; the stale entries must not survive.
	active = subscribers(1)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.entries) != 1 {
		t.Errorf("expected 1 scheduled job after reload, got %d", len(s.entries))
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("expected 1 cron entry after reload, got %d", got)
	}
}

func TestScheduler_Reload_SkipsBrokenNotifyTime(t *testing.T) {
	t.Parallel()

	source := &mockSubscriberSource{
		ListActiveFunc: func(ctx context.Context) ([]subentity.Subscriber, error) {
			return subscribers(1, 2), nil
		},
		PreferencesFunc: func(ctx context.Context, chatID int64) (subentity.Preferences, error) {
			if chatID == 1 {
				return subentity.Preferences{ScanDays: 30, NotifyTime: "whenever"}, nil
			}
			return subentity.Preferences{ScanDays: 30, NotifyTime: "09:00"}, nil
		},
	}

	s := New(source, &mockRunner{})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("a broken stored time must not fail the reload: %v", err)
	}
	if len(s.entries) != 1 {
		t.Errorf("expected the broken subscriber to be skipped, got %d jobs", len(s.entries))
	}
}

func TestScheduler_Reload_ListError(t *testing.T) {
	t.Parallel()

	source := &mockSubscriberSource{
		ListActiveFunc: func(ctx context.Context) ([]subentity.Subscriber, error) {
			return nil, errors.New("db closed")
		},
	}

	s := New(source, &mockRunner{})
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("expected an error when the store is unavailable")
	}
}
