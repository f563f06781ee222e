// Package aiquiztest provides a scripted model provider and payload helpers
// for tests of packages that generate quizzes.
package aiquiztest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
)

// Provider replays Responses in order and repeats the last one once they run
// out. When Err is set every call fails with it. When Block is set calls wait
// for the context to end.
type Provider struct {
	Responses []string
	Err       error
	Block     bool

	mu       sync.Mutex
	requests []aiquiz.CompletionRequest
}

func (p *Provider) Name() string { return "scripted" }

func (p *Provider) Complete(ctx context.Context, req aiquiz.CompletionRequest) (string, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	n := len(p.requests)
	p.mu.Unlock()

	if p.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if p.Err != nil {
		return "", p.Err
	}
	if len(p.Responses) == 0 {
		return "", fmt.Errorf("no scripted response")
	}
	if n > len(p.Responses) {
		n = len(p.Responses)
	}
	return p.Responses[n-1], nil
}

func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func (p *Provider) Requests() []aiquiz.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]aiquiz.CompletionRequest(nil), p.requests...)
}

type Question struct {
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Questions returns n distinct well-formed questions with k choices each.
func Questions(n, k int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		choices := make([]string, k)
		for j := range choices {
			choices[j] = fmt.Sprintf("Option %d.%d", i+1, j+1)
		}
		qs[i] = Question{
			Type:        "multiple_choice",
			Question:    fmt.Sprintf("Question number %d?", i+1),
			Choices:     choices,
			Answer:      choices[i%k],
			Explanation: fmt.Sprintf("Option %d.%d is stated in the material.", i+1, i%k+1),
		}
	}
	return qs
}

// Encode renders a payload the way a model would return it.
func Encode(title, language string, qs []Question) string {
	b, err := json.Marshal(map[string]any{
		"title":     title,
		"language":  language,
		"questions": qs,
	})
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Payload is Encode(title, language, Questions(n, k)).
func Payload(title, language string, n, k int) string {
	return Encode(title, language, Questions(n, k))
}
