package attempt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
)

type AttemptRepository interface {
	Create(ctx context.Context, a *Attempt) error
	GetByID(ctx context.Context, id uuid.UUID) (*Attempt, error)
	ListByUser(ctx context.Context, userID string) ([]Attempt, error)
	GetQuestion(ctx context.Context, quizID, questionID uuid.UUID) (*quiz.QuizQuestion, error)
	UpsertAnswer(ctx context.Context, ans *AttemptAnswer) error
	CountCorrect(ctx context.Context, attemptID uuid.UUID) (int, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score int, finishedAt *time.Time) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, a *Attempt) error {
	return r.db.WithContext(ctx).Omit("Answers").Create(a).Error
}

func (r *attemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*Attempt, error) {
	var a Attempt
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answered_at ASC") }).
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt", id.String())
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) ListByUser(ctx context.Context, userID string) ([]Attempt, error) {
	attempts := []Attempt{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) GetQuestion(ctx context.Context, quizID, questionID uuid.UUID) (*quiz.QuizQuestion, error) {
	var q quiz.QuizQuestion
	err := r.db.WithContext(ctx).First(&q, "id = ? AND quiz_id = ?", questionID, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question", questionID.String())
		}
		return nil, err
	}
	return &q, nil
}

// UpsertAnswer inserts the answer or replaces the existing one for the same
// attempt and question.
func (r *attemptRepository) UpsertAnswer(ctx context.Context, ans *AttemptAnswer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_answer", "is_correct", "answered_at"}),
	}).Create(ans).Error
}

func (r *attemptRepository) CountCorrect(ctx context.Context, attemptID uuid.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&AttemptAnswer{}).
		Where("attempt_id = ? AND is_correct = ?", attemptID, true).
		Count(&n).Error
	return int(n), err
}

// UpdateScore stores the score. Without finishedAt it is a live score and
// only applies while the attempt is still open, so a concurrent finish keeps
// the score it sealed.
func (r *attemptRepository) UpdateScore(ctx context.Context, id uuid.UUID, score int, finishedAt *time.Time) error {
	q := r.db.WithContext(ctx).Model(&Attempt{}).Where("id = ?", id)
	updates := map[string]interface{}{"score": score}
	if finishedAt != nil {
		updates["finished_at"] = *finishedAt
	} else {
		q = q.Where("finished_at IS NULL")
	}
	return q.Updates(updates).Error
}
