package aiquiz

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

type AIQuizContainer struct {
	Builder *quizspec.Builder
	Engine  *Engine
	Handler *Handler
}

func NewAIQuizContainer(ctx context.Context, cfg *config.Config) (*AIQuizContainer, error) {
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewAIQuizContainerWithProvider(cfg, provider), nil
}

// NewAIQuizContainerWithProvider wires the package around an existing
// provider. Tests use it with a scripted one.
func NewAIQuizContainerWithProvider(cfg *config.Config, provider Provider) *AIQuizContainer {
	builder := quizspec.NewBuilder(quizspec.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		MaxSourceChars:  cfg.MaxSourceChars,
	})
	engine := NewEngine(provider, cfg.AICallTimeout)
	service := NewService(builder, engine)

	return &AIQuizContainer{
		Builder: builder,
		Engine:  engine,
		Handler: NewHandler(service),
	}
}

// NewProvider builds the provider named by AI_PROVIDER.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.AIProvider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
