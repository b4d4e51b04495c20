// Package adapters implements the subscriber repository on SQLite.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crypto_signal_bot/internal/feature/subscriber/domain/entity"
	"crypto_signal_bot/internal/feature/subscriber/usecase"
)

type subscriberSQLite struct {
	db *gorm.DB
}

var _ usecase.SubscriberRepository = (*subscriberSQLite)(nil)

// NewSubscriberRepository creates the SQLite-backed subscriber repository.
func NewSubscriberRepository(db *gorm.DB) *subscriberSQLite {
	return &subscriberSQLite{db: db}
}

// SubscriberModel is the GORM model for the subscribers table.
type SubscriberModel struct {
	ChatID           int64  `gorm:"primaryKey"`
	Username         string `gorm:"size:64"`
	IsActive         bool   `gorm:"not null;default:true"`
	SubscribedAt     time.Time
	LastNotification *time.Time
}

func (SubscriberModel) TableName() string {
	return "subscribers"
}

// UserSettingModel is the GORM model for per-user settings rows.
type UserSettingModel struct {
	ID        uint   `gorm:"primaryKey"`
	ChatID    int64  `gorm:"not null;uniqueIndex:setting_chat_name,priority:1"`
	Name      string `gorm:"size:32;not null;uniqueIndex:setting_chat_name,priority:2"`
	Value     string `gorm:"size:64;not null"`
	UpdatedAt time.Time
}

func (UserSettingModel) TableName() string {
	return "user_settings"
}

func toModel(e entity.Subscriber) SubscriberModel {
	return SubscriberModel{
		ChatID:           e.ChatID,
		Username:         e.Username,
		IsActive:         true,
		SubscribedAt:     e.SubscribedAt,
		LastNotification: e.LastNotification,
	}
}

func toEntity(m SubscriberModel) entity.Subscriber {
	return entity.Subscriber{
		ChatID:           m.ChatID,
		Username:         m.Username,
		SubscribedAt:     m.SubscribedAt,
		LastNotification: m.LastNotification,
	}
}

// Upsert inserts a subscriber or reactivates an existing row, keeping the
// original LastNotification.
func (r *subscriberSQLite) Upsert(ctx context.Context, sub entity.Subscriber) error {
	m := toModel(sub)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "is_active", "subscribed_at"}),
	}).Create(&m).Error
}

// Deactivate marks a subscriber inactive. Missing rows are a no-op.
func (r *subscriberSQLite) Deactivate(ctx context.Context, chatID int64) error {
	return r.db.WithContext(ctx).
		Model(&SubscriberModel{}).
		Where("chat_id = ?", chatID).
		Update("is_active", false).Error
}

// ListActive returns all active subscribers ordered by chat id.
func (r *subscriberSQLite) ListActive(ctx context.Context) ([]entity.Subscriber, error) {
	var rows []SubscriberModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("chat_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Subscriber, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// RecordNotification stores the last notification time for a subscriber.
func (r *subscriberSQLite) RecordNotification(ctx context.Context, chatID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&SubscriberModel{}).
		Where("chat_id = ?", chatID).
		Update("last_notification", at).Error
}

// GetSetting returns a setting value and whether the row exists.
func (r *subscriberSQLite) GetSetting(ctx context.Context, chatID int64, name string) (string, bool, error) {
	var row UserSettingModel
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND name = ?", chatID, name).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

// SetSetting creates or replaces a setting row for a subscriber.
func (r *subscriberSQLite) SetSetting(ctx context.Context, chatID int64, name, value string) error {
	m := UserSettingModel{ChatID: chatID, Name: name, Value: value, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}
