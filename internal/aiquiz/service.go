package aiquiz

import (
	"context"

	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

type Service interface {
	// Preview generates a topic quiz without storing it.
	Preview(ctx context.Context, req GenerateRequest) (*Result, error)
}

type service struct {
	builder   *quizspec.Builder
	generator Generator
}

func NewService(builder *quizspec.Builder, generator Generator) Service {
	return &service{builder: builder, generator: generator}
}

func (s *service) Preview(ctx context.Context, req GenerateRequest) (*Result, error) {
	return s.generator.Generate(ctx, s.builder.Build(req.SpecRequest(nil)))
}
