package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

type openAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider talks to the chat completions API. baseURL may point at any
// compatible endpoint; empty means the public API.
func NewOpenAIProvider(apiKey, model, baseURL string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *openAIProvider) Name() string { return config.ProviderOpenAI }

func (p *openAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	schema, err := json.Marshal(req.Schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: json.RawMessage(schema),
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
