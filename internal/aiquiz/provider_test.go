package aiquiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

func TestGeminiConfigCarriesSchema(t *testing.T) {
	c := quizspec.NewBuilder(quizspec.Options{DefaultLanguage: "en"}).Build(quizspec.Request{
		Context:       quizspec.ContextMeta{Topic: "Volcanoes"},
		QuestionCount: 3,
		ChoiceCount:   4,
	})

	cfg := geminiConfig(CompletionRequest{
		System:      c.SystemPrompt,
		User:        c.UserPrompt,
		SchemaName:  c.SchemaName,
		Schema:      c.Schema,
		Temperature: 0.7,
	})

	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ResponseJsonSchema)
	assert.Equal(t, c.Schema, cfg.ResponseJsonSchema)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, c.SystemPrompt, cfg.SystemInstruction.Parts[0].Text)
}

func TestGeminiConfigWithoutSchema(t *testing.T) {
	cfg := geminiConfig(CompletionRequest{System: "s", User: "u"})
	assert.Nil(t, cfg.ResponseJsonSchema)
	assert.Nil(t, cfg.Temperature)
}
