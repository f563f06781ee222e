package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

// Migration is one forward step of the schema.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

type schemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:text;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Migrate applies every migration newer than the recorded version, each in its
// own transaction. It returns the versions it applied.
func Migrate(ctx context.Context, db *gorm.DB) ([]int, error) {
	return apply(ctx, db, migrations)
}

func apply(ctx context.Context, db *gorm.DB, steps []Migration) ([]int, error) {
	log := config.WithContext(ctx)
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	var current int
	if err := db.Model(&schemaMigration{}).Select("COALESCE(MAX(version), 0)").Scan(&current).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	var applied []int
	for _, m := range steps {
		if m.Version <= current {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		log.WithField("version", m.Version).Infof("Applied migration: %s", m.Name)
		applied = append(applied, m.Version)
	}
	return applied, nil
}

// Version returns the latest applied migration, 0 when none.
func Version(ctx context.Context, db *gorm.DB) (int, error) {
	var v int
	err := db.WithContext(ctx).Model(&schemaMigration{}).Select("COALESCE(MAX(version), 0)").Scan(&v).Error
	return v, err
}
