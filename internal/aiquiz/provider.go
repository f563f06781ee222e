package aiquiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"google.golang.org/genai"
)

// CompletionRequest is one round trip to a generative model.
type CompletionRequest struct {
	System      string
	User        string
	SchemaName  string
	Schema      map[string]any
	Temperature float32
}

// Provider is the generative model seen as a black box: prompts in, text out.
// The text is not trusted to be JSON.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Name() string { return config.ProviderGemini }

func (p *geminiProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.User), geminiConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return raw, nil
}

// geminiConfig constrains the response to the contract schema, as the OpenAI
// provider does with its response format.
func geminiConfig(req CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	if req.Schema != nil {
		cfg.ResponseJsonSchema = req.Schema
	}
	if req.Temperature > 0 {
		cfg.Temperature = float32Ptr(req.Temperature)
	}
	return cfg
}

func float32Ptr(v float32) *float32 { return &v }
