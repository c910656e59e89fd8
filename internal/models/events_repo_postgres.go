package models

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"gorm.io/gorm"
)

//go:embed migration/*.sql
var migrationFS embed.FS

func (pg *PostgresRepo) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	var event Event
	err := pg.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return &event, nil
}

func (pg *PostgresRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	events := []*Event{}
	if err := pg.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// SaveEvent relies on Event.BeforeSave for the entity-level checks.
// An id with no row is ErrNotFound; the row is never re-created.
func (pg *PostgresRepo) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	db := pg.db.WithContext(ctx)

	if event.ID == 0 {
		if err := db.Create(event).Error; err != nil {
			return nil, saveError(err)
		}
		return event, nil
	}

	res := db.Model(event).Select("*").Updates(event)
	if res.Error != nil {
		return nil, saveError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to update event %d: %w", event.ID, ErrNotFound)
	}
	return event, nil
}

func saveError(err error) error {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}
	return fmt.Errorf("failed to save event: %w", err)
}

func (pg *PostgresRepo) DeleteEvent(ctx context.Context, id int64) error {
	if err := pg.db.WithContext(ctx).Delete(&Event{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}

// Migrate applies every embedded migration that has not run yet, in file name order.
func (pg *PostgresRepo) Migrate(ctx context.Context, logger *slog.Logger) error {
	db := pg.db.WithContext(ctx)

	// Ensure the 'migrations' table exists so we don't duplicate migrations.
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS migrations (name TEXT PRIMARY KEY)`).Error; err != nil {
		return fmt.Errorf("cannot create migrations table: %w", err)
	}

	names, err := fs.Glob(migrationFS, "migration/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		if err := migrateFile(db, name, logger); err != nil {
			return fmt.Errorf("migration error: name=%q err=%w", name, err)
		}
	}
	return nil
}

func migrateFile(db *gorm.DB, name string, logger *slog.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table("migrations").Where("name = ?", name).Count(&n).Error; err != nil {
			return err
		}
		if n != 0 {
			return nil
		}

		buf, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return err
		}
		if err := tx.Exec(string(buf)).Error; err != nil {
			return err
		}

		if err := tx.Exec(`INSERT INTO migrations (name) VALUES (?)`, name).Error; err != nil {
			return err
		}
		logger.Info("Applied migration", "name", name)
		return nil
	})
}
