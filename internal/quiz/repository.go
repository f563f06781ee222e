package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

type QuizRepository interface {
	// CreateQuiz stores q and its questions as one unit. Question idx values
	// are taken from slice order.
	CreateQuiz(ctx context.Context, q *Quiz, questions []QuizQuestion) (uuid.UUID, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (*Quiz, []QuizQuestion, error)
	ListQuizzes(ctx context.Context, userID string) ([]Summary, error)
	DeleteQuiz(ctx context.Context, id uuid.UUID) error
}

type quizRepository struct {
	db            *gorm.DB
	transactional bool
}

// NewRepository returns the gorm-backed store. With transactional false the
// quiz and its questions are written in separate statements and a failed
// question insert is compensated by deleting the quiz row.
func NewRepository(db *gorm.DB, transactional bool) QuizRepository {
	return &quizRepository{db: db, transactional: transactional}
}

func (r *quizRepository) CreateQuiz(ctx context.Context, q *Quiz, questions []QuizQuestion) (uuid.UUID, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	q.TotalQuestions = len(questions)
	for i := range questions {
		questions[i].QuizID = q.ID
		questions[i].Idx = i
	}

	if r.transactional {
		return q.ID, r.createInTx(ctx, q, questions)
	}
	return q.ID, r.createCompensated(ctx, q, questions)
}

func (r *quizRepository) createInTx(ctx context.Context, q *Quiz, questions []QuizQuestion) error {
	q.Status = StatusReady
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Create(q).Error; err != nil {
			return fmt.Errorf("failed to insert quiz: %w", err)
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to insert questions: %w", err)
			}
		}
		return nil
	})
}

func (r *quizRepository) createCompensated(ctx context.Context, q *Quiz, questions []QuizQuestion) error {
	log := config.WithContext(ctx).WithField("quiz_id", q.ID.String())
	db := r.db.WithContext(ctx)

	q.Status = StatusPending
	if err := db.Omit("Questions").Create(q).Error; err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	var cause error
	if len(questions) > 0 {
		if err := db.Create(&questions).Error; err != nil {
			cause = fmt.Errorf("failed to insert questions: %w", err)
		}
	}
	if cause == nil {
		err := db.Model(&Quiz{}).Where("id = ?", q.ID).Update("status", StatusReady).Error
		if err == nil {
			q.Status = StatusReady
			return nil
		}
		cause = fmt.Errorf("failed to mark quiz ready: %w", err)
	}

	log.WithError(cause).Warn("Compensating partially stored quiz")
	if err := r.deleteAll(db, q.ID); err != nil {
		log.WithError(err).Error("Compensating delete failed, quiz row left pending")
		return fmt.Errorf("%w: %w (compensation failed: %v)", apperr.ErrPersistencePartialFailure, cause, err)
	}
	return fmt.Errorf("%w: %w", apperr.ErrPersistencePartialFailure, cause)
}

func (r *quizRepository) GetQuiz(ctx context.Context, id uuid.UUID) (*Quiz, []QuizQuestion, error) {
	db := r.db.WithContext(ctx)

	var q Quiz
	if err := db.First(&q, "id = ? AND status = ?", id, StatusReady).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("quiz", id.String())
		}
		return nil, nil, err
	}

	var questions []QuizQuestion
	if err := db.
		Where("quiz_id = ?", id).
		Order("idx ASC").
		Find(&questions).Error; err != nil {
		return nil, nil, err
	}
	return &q, questions, nil
}

func (r *quizRepository) ListQuizzes(ctx context.Context, userID string) ([]Summary, error) {
	summaries := []Summary{}
	if err := r.db.WithContext(ctx).
		Model(&Quiz{}).
		Select("id", "title", "language", "difficulty", "source_type", "total_questions", "created_at").
		Where("user_id = ? AND status = ?", userID, StatusReady).
		Order("created_at DESC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *quizRepository) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.deleteAll(tx, id)
	})
}

// deleteAll removes a quiz with everything that hangs off it. The foreign keys
// cascade as well; the explicit deletes keep stores without enforced foreign
// keys consistent.
func (r *quizRepository) deleteAll(db *gorm.DB, id uuid.UUID) error {
	stmts := []string{
		"DELETE FROM attempt_answers WHERE attempt_id IN (SELECT id FROM attempts WHERE quiz_id = ?)",
		"DELETE FROM attempts WHERE quiz_id = ?",
		"DELETE FROM quiz_questions WHERE quiz_id = ?",
	}
	for _, s := range stmts {
		if err := db.Exec(s, id).Error; err != nil {
			return err
		}
	}

	res := db.Delete(&Quiz{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("quiz", id.String())
	}
	return nil
}
