package attempt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
)

type Service interface {
	Start(ctx context.Context, quizID uuid.UUID, userID string) (*Attempt, error)
	SubmitAnswer(ctx context.Context, attemptID, questionID uuid.UUID, answer string) (bool, error)
	Finish(ctx context.Context, attemptID uuid.UUID) (*Attempt, error)
	Get(ctx context.Context, attemptID uuid.UUID) (*Attempt, error)
	ListByUser(ctx context.Context, userID string) ([]Attempt, error)
}

type service struct {
	repo    AttemptRepository
	quizzes quiz.QuizRepository
	now     func() time.Time
}

func NewService(repo AttemptRepository, quizzes quiz.QuizRepository) Service {
	return &service{
		repo:    repo,
		quizzes: quizzes,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Start(ctx context.Context, quizID uuid.UUID, userID string) (*Attempt, error) {
	_, questions, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	a := &Attempt{
		QuizID:    quizID,
		UserID:    userID,
		Total:     len(questions),
		StartedAt: s.now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"attempt_id": a.ID.String(),
		"quiz_id":    quizID.String(),
		"total":      a.Total,
	}).Info("Attempt started")
	return a, nil
}

// SubmitAnswer records the answer for one question, replacing any earlier one.
// Correctness is decided here, once, by exact comparison after trimming.
// While the attempt is open the score is recomputed from the stored answers.
func (s *service) SubmitAnswer(ctx context.Context, attemptID, questionID uuid.UUID, answer string) (bool, error) {
	a, err := s.repo.GetByID(ctx, attemptID)
	if err != nil {
		return false, err
	}

	q, err := s.repo.GetQuestion(ctx, a.QuizID, questionID)
	if err != nil {
		return false, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false, apperr.Input("answer must not be empty")
	}
	correct := answer == strings.TrimSpace(q.Answer)

	if err := s.repo.UpsertAnswer(ctx, &AttemptAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		UserAnswer: answer,
		IsCorrect:  correct,
		AnsweredAt: s.now(),
	}); err != nil {
		return false, err
	}

	if !a.Finished() {
		score, err := s.repo.CountCorrect(ctx, attemptID)
		if err != nil {
			return false, err
		}
		if err := s.repo.UpdateScore(ctx, attemptID, score, nil); err != nil {
			return false, err
		}
	}
	return correct, nil
}

// Finish seals the attempt. The score is always a fresh count of correct
// answers; finishing again recomputes it and keeps the first finish time.
func (s *service) Finish(ctx context.Context, attemptID uuid.UUID) (*Attempt, error) {
	a, err := s.repo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	score, err := s.repo.CountCorrect(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	finishedAt := a.FinishedAt
	if finishedAt == nil {
		t := s.now()
		finishedAt = &t
	}
	if err := s.repo.UpdateScore(ctx, attemptID, score, finishedAt); err != nil {
		return nil, err
	}

	a.Score = score
	a.FinishedAt = finishedAt

	config.WithContext(ctx).WithFields(logrus.Fields{
		"attempt_id": attemptID.String(),
		"score":      score,
		"total":      a.Total,
	}).Info("Attempt finished")
	return a, nil
}

func (s *service) Get(ctx context.Context, attemptID uuid.UUID) (*Attempt, error) {
	return s.repo.GetByID(ctx, attemptID)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Attempt, error) {
	return s.repo.ListByUser(ctx, userID)
}
