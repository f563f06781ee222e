package attempt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/attempt"
	"github.com/saulo-duarte/quizgen-lambda/internal/database/dbtest"
	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
)

type fixture struct {
	db        *gorm.DB
	quizzes   quiz.QuizRepository
	service   attempt.Service
	quizID    uuid.UUID
	questions []quiz.QuizQuestion
}

// newFixture stores a three question quiz whose answers are "a", "b", "c".
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	quizzes := quiz.NewRepository(db, true)
	ctx := context.Background()

	questions := make([]quiz.QuizQuestion, 3)
	for i, ans := range []string{"a", "b", "c"} {
		questions[i] = quiz.QuizQuestion{
			Type:         "multiple_choice",
			QuestionText: "Question " + ans,
			Choices:      datatypes.NewJSONType([]string{"a", "b", "c"}),
			Answer:       ans,
			Explanation:  "e",
		}
	}
	id, err := quizzes.CreateQuiz(ctx, &quiz.Quiz{
		UserID:     "u1",
		Title:      "T",
		Language:   "en",
		Difficulty: "easy",
		SourceType: quiz.SourceTopic,
		SourceMeta: datatypes.JSONMap{},
		Settings:   datatypes.NewJSONType(quiz.Settings{QuestionCount: 3, ChoiceCount: 3}),
	}, questions)
	require.NoError(t, err)

	_, stored, err := quizzes.GetQuiz(ctx, id)
	require.NoError(t, err)

	return &fixture{
		db:        db,
		quizzes:   quizzes,
		service:   attempt.NewService(attempt.NewRepository(db), quizzes),
		quizID:    id,
		questions: stored,
	}
}

func (f *fixture) answerRows(t *testing.T, attemptID uuid.UUID) []attempt.AttemptAnswer {
	t.Helper()
	var rows []attempt.AttemptAnswer
	require.NoError(t, f.db.Where("attempt_id = ?", attemptID).Find(&rows).Error)
	return rows
}

func TestAttemptScoringScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.service.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Total)
	assert.Zero(t, a.Score)
	assert.Nil(t, a.FinishedAt)

	correct, err := f.service.SubmitAnswer(ctx, a.ID, f.questions[0].ID, " a ")
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = f.service.SubmitAnswer(ctx, a.ID, f.questions[1].ID, "c")
	require.NoError(t, err)
	assert.False(t, correct)

	finished, err := f.service.Finish(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, finished.Score)
	assert.Equal(t, 3, finished.Total)
	assert.NotNil(t, finished.FinishedAt)
}

func TestSubmitAnswerReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.service.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)
	q := f.questions[1]

	_, err = f.service.SubmitAnswer(ctx, a.ID, q.ID, "a")
	require.NoError(t, err)
	correct, err := f.service.SubmitAnswer(ctx, a.ID, q.ID, "b")
	require.NoError(t, err)
	assert.True(t, correct)

	rows := f.answerRows(t, a.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].UserAnswer)
	assert.True(t, rows[0].IsCorrect)

	got, err := f.service.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Score)

	// switching back to a wrong answer lowers the live score
	_, err = f.service.SubmitAnswer(ctx, a.ID, q.ID, "c")
	require.NoError(t, err)
	got, err = f.service.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Score)
	assert.Len(t, got.Answers, 1)
}

func TestFinishIsDeterministic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.service.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)
	for i, ans := range []string{"a", "b", "a"} {
		_, err := f.service.SubmitAnswer(ctx, a.ID, f.questions[i].ID, ans)
		require.NoError(t, err)
	}

	first, err := f.service.Finish(ctx, a.ID)
	require.NoError(t, err)
	second, err := f.service.Finish(ctx, a.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Score)
	assert.Equal(t, first.Score, second.Score)
	assert.True(t, first.FinishedAt.Equal(*second.FinishedAt))
}

func TestSubmitAfterFinishKeepsScoreUntilRefinish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.service.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)
	_, err = f.service.Finish(ctx, a.ID)
	require.NoError(t, err)

	correct, err := f.service.SubmitAnswer(ctx, a.ID, f.questions[2].ID, "c")
	require.NoError(t, err)
	assert.True(t, correct)

	got, err := f.service.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Score)

	refinished, err := f.service.Finish(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refinished.Score)
}

// finishingRepository finishes the attempt right before the next answer is
// written, the way a concurrent finish request would.
type finishingRepository struct {
	attempt.AttemptRepository
	before func()
}

func (r *finishingRepository) UpsertAnswer(ctx context.Context, ans *attempt.AttemptAnswer) error {
	if hook := r.before; hook != nil {
		r.before = nil
		hook()
	}
	return r.AttemptRepository.UpsertAnswer(ctx, ans)
}

func TestFinishDuringSubmitKeepsSealedScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	repo := &finishingRepository{AttemptRepository: attempt.NewRepository(f.db)}
	svc := attempt.NewService(repo, f.quizzes)

	a, err := svc.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)

	repo.before = func() {
		finished, err := svc.Finish(ctx, a.ID)
		require.NoError(t, err)
		require.Zero(t, finished.Score)
	}

	correct, err := svc.SubmitAnswer(ctx, a.ID, f.questions[0].ID, "a")
	require.NoError(t, err)
	assert.True(t, correct)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Finished())
	assert.Zero(t, got.Score)
	assert.Len(t, got.Answers, 1)

	refinished, err := svc.Finish(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refinished.Score)
}

func TestAttemptErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Start(ctx, uuid.New(), "u1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.service.SubmitAnswer(ctx, uuid.New(), f.questions[0].ID, "a")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	a, err := f.service.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)

	_, err = f.service.SubmitAnswer(ctx, a.ID, uuid.New(), "a")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.service.SubmitAnswer(ctx, a.ID, f.questions[0].ID, "   ")
	assert.True(t, errors.Is(err, apperr.ErrInputValidation))

	_, err = f.service.Finish(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeletingQuizRemovesAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.service.Start(ctx, f.quizID, "u1")
	require.NoError(t, err)
	_, err = f.service.SubmitAnswer(ctx, a.ID, f.questions[0].ID, "a")
	require.NoError(t, err)

	require.NoError(t, f.quizzes.DeleteQuiz(ctx, f.quizID))

	_, err = f.service.Get(ctx, a.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Empty(t, f.answerRows(t, a.ID))
}
