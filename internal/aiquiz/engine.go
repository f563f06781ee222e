package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

// MaxAttempts bounds the model calls of one generation: the first call plus a
// single repair.
const MaxAttempts = 2

// Generator is what the quiz service needs from the engine.
type Generator interface {
	Generate(ctx context.Context, c quizspec.Contract) (*Result, error)
}

type Engine struct {
	provider Provider
	timeout  time.Duration
}

func NewEngine(provider Provider, timeout time.Duration) *Engine {
	return &Engine{provider: provider, timeout: timeout}
}

// Generate runs the contract against the provider and returns a payload that
// satisfies every rule of the contract. Malformed or non-compliant output gets
// one repair round trip; provider failures are returned immediately.
func (e *Engine) Generate(ctx context.Context, c quizspec.Contract) (*Result, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"run_id":    uuid.NewString(),
		"provider":  e.provider.Name(),
		"language":  c.Language,
		"questions": c.QuestionCount,
		"choices":   c.ChoiceCount,
	})

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(c.ValidationSchema))
	if err != nil {
		return nil, fmt.Errorf("invalid validation schema: %w", err)
	}

	req := CompletionRequest{
		System:      c.SystemPrompt,
		User:        c.UserPrompt,
		SchemaName:  c.SchemaName,
		Schema:      c.Schema,
		Temperature: c.Temperature,
	}

	var lastErr error
	for call := 1; call <= MaxAttempts; call++ {
		log.WithField("call", call).Debugf("Model request:\n%s", req.User)
		raw, err := e.complete(ctx, req)
		if err != nil {
			log.WithError(err).WithField("call", call).Error("Model call failed")
			return nil, err
		}
		log.WithField("call", call).Debugf("Raw model output:\n%s", raw)

		res, err := e.check(c, schema, raw)
		if err == nil {
			res.Calls = call
			log.WithField("calls", call).Infof("Generated %d questions", len(res.Questions))
			return res, nil
		}

		lastErr = err
		log.WithError(err).WithField("call", call).Warn("Model output rejected")
		req.User = repairPrompt(c, raw, err)
	}

	return nil, lastErr
}

func (e *Engine) complete(ctx context.Context, req CompletionRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.provider.Complete(callCtx, req)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", unavailable(e.provider.Name(), fmt.Errorf("timed out after %s", e.timeout))
		}
		return "", unavailable(e.provider.Name(), err)
	}
	return raw, nil
}

func (e *Engine) check(c quizspec.Contract, schema *gojsonschema.Schema, raw string) (*Result, error) {
	p, err := parseOutput(schema, raw)
	if err != nil {
		return nil, err
	}
	if violations := validatePayload(c, p); len(violations) > 0 {
		return nil, &SemanticError{Violations: violations}
	}
	return normalize(c, p)
}
