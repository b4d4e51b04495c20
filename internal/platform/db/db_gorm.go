// Package db opens and migrates the bot's local SQLite database.
package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	subscriberadapters "crypto_signal_bot/internal/feature/subscriber/adapters"
)

// Open opens the SQLite database at path and runs the schema migrations
// for the subscriber tables. The subscriber store is a single local file
// (default "subscribers.db"), so there is no connect-retry loop here.
func Open(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	if err := gdb.AutoMigrate(
		&subscriberadapters.SubscriberModel{},
		&subscriberadapters.UserSettingModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}
