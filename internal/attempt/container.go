package attempt

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
)

type AttemptContainer struct {
	Service Service
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB, quizzes quiz.QuizRepository) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizzes)
	handler := NewHandler(service)

	return &AttemptContainer{
		Service: service,
		Handler: handler,
	}
}
