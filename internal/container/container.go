package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/attempt"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/extract"
	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/router"
)

type Container struct {
	Config *config.Config
	DB     *gorm.DB

	AIQuizContainer  *aiquiz.AIQuizContainer
	QuizContainer    *quiz.QuizContainer
	AttemptContainer *attempt.AttemptContainer

	gcp *extract.GCP
}

// New connects the database and the model provider and wires every feature
// around them.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	db, err := config.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	aiQuizContainer, err := aiquiz.NewAIQuizContainer(ctx, cfg)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	c, err := build(ctx, cfg, db, aiQuizContainer)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	return c, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// NewWithProvider wires the container around an open database and a given
// provider.
func NewWithProvider(ctx context.Context, cfg *config.Config, db *gorm.DB, provider aiquiz.Provider) (*Container, error) {
	return build(ctx, cfg, db, aiquiz.NewAIQuizContainerWithProvider(cfg, provider))
}

func build(ctx context.Context, cfg *config.Config, db *gorm.DB, ai *aiquiz.AIQuizContainer) (*Container, error) {
	c := &Container{Config: cfg, DB: db, AIQuizContainer: ai}

	// a nil *GCP must not reach the handler as a non-nil interface
	var extractor extract.Extractor
	if cfg.ExtractionEnabled() {
		gcp, err := extract.NewGCP(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create extractors: %w", err)
		}
		c.gcp = gcp
		extractor = gcp
	} else {
		config.WithContext(ctx).Warn("Document extraction disabled, uploads will be rejected")
	}

	c.QuizContainer = quiz.NewQuizContainer(db, cfg, ai.Builder, ai.Engine, extractor)
	c.AttemptContainer = attempt.NewAttemptContainer(db, c.QuizContainer.Repository)
	return c, nil
}

// Handler returns the HTTP surface of the service.
func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		AllowedOrigins: c.Config.AllowedOrigins,
		MaxUploadBytes: c.Config.MaxUploadBytes,
		AIQuizHandler:  c.AIQuizContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler,
		AttemptHandler: c.AttemptContainer.Handler,
	})
}

func (c *Container) Close() error {
	var errs []error
	if c.gcp != nil {
		errs = append(errs, c.gcp.Close())
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
