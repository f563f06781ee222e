// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/database"
)

// DSN returns a private in-memory sqlite DSN with foreign keys enforced.
func DSN() string {
	return fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
}

// Open returns a fresh database with every migration applied. It is closed
// when the test ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := config.Connect(ctx, DSN())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	_, err = database.Migrate(ctx, db)
	require.NoError(t, err)
	return db
}
