package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/database"
	"github.com/saulo-duarte/quizgen-lambda/internal/database/dbtest"
)

func TestMigrateIsIncremental(t *testing.T) {
	ctx := context.Background()
	db, err := config.Connect(ctx, dbtest.DSN())
	require.NoError(t, err)

	applied, err := database.Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)

	for _, table := range []string{"quizzes", "quiz_questions", "attempts", "attempt_answers"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("attempt_answers", "idx_attempt_question"))

	applied, err = database.Migrate(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	v, err := database.Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
