package quiz

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/extract"
	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

type QuizContainer struct {
	Repository QuizRepository
	Service    QuizService
	Handler    *Handler
}

func NewQuizContainer(db *gorm.DB, cfg *config.Config, builder *quizspec.Builder, generator aiquiz.Generator, extractor extract.Extractor) *QuizContainer {
	repo := NewRepository(db, cfg.StoreTransactional)
	service := NewService(repo, builder, generator, ServiceOptions{
		MinSourceChars:        cfg.MinSourceChars,
		RetainSourceText:      cfg.RetainSourceText,
		RegenerateTemperature: cfg.RegenerateTemperature,
	})
	handler := NewHandler(service, extractor)

	return &QuizContainer{
		Repository: repo,
		Service:    service,
		Handler:    handler,
	}
}
