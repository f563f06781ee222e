package aiquiz_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz/aiquiztest"
	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

// mutate applies a random damage to a decoded payload. Some mutations are
// harmless (extra fields, case or whitespace noise), others break a rule.
func mutate(rng *rand.Rand, doc map[string]any) {
	questions, _ := doc["questions"].([]any)
	if len(questions) == 0 {
		return
	}
	q := questions[rng.IntN(len(questions))].(map[string]any)
	choices, _ := q["choices"].([]any)

	switch rng.IntN(12) {
	case 0:
		q["idx"] = rng.IntN(100)
		q["position"] = rng.IntN(100)
	case 1:
		q["hint"] = "extra field"
		doc["model"] = "extra"
	case 2:
		delete(q, "answer")
	case 3:
		delete(q, "explanation")
	case 4:
		if a, ok := q["answer"].(string); ok {
			q["answer"] = strings.ToUpper(a)
		}
	case 5:
		if a, ok := q["answer"].(string); ok {
			q["answer"] = "  " + a + "\t"
		}
	case 6:
		q["answer"] = "none of the above"
	case 7:
		if len(choices) > 1 {
			q["choices"] = choices[:len(choices)-1]
		}
	case 8:
		doc["questions"] = append(questions, questions[0])
	case 9:
		q["choices"] = "not an array"
	case 10:
		delete(doc, "title")
		delete(doc, "language")
	case 11:
		if len(choices) > 1 {
			choices[1] = choices[0]
		}
	}
}

func TestGenerateAnswerMembershipProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(20240601, 7))

	for i := 0; i < 300; i++ {
		n := 1 + rng.IntN(8)
		k := 3 + rng.IntN(2)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(aiquiztest.Payload("T", "en", n, k)), &doc))
		for m := rng.IntN(3); m >= 0; m-- {
			mutate(rng, doc)
		}
		raw, err := json.Marshal(doc)
		require.NoError(t, err)

		p := &aiquiztest.Provider{Responses: []string{string(raw)}}
		c := contract(quizspec.Request{QuestionCount: n, ChoiceCount: k})

		res, err := aiquiz.NewEngine(p, time.Second).Generate(context.Background(), c)
		if err != nil {
			require.Truef(t, errors.Is(err, apperr.ErrGenerationFailed), "iteration %d: %v", i, err)
			assert.LessOrEqual(t, p.Calls(), aiquiz.MaxAttempts)
			continue
		}

		require.Len(t, res.Questions, n, "iteration %d", i)
		for idx, q := range res.Questions {
			assert.Equal(t, idx, q.Idx)
			assert.Len(t, q.Choices, k)
			assert.Contains(t, q.Choices, q.Answer, "iteration %d", i)

			seen := make(map[string]bool)
			for _, ch := range q.Choices {
				key := strings.ToLower(ch)
				assert.False(t, seen[key], "iteration %d: duplicate choice %q", i, ch)
				seen[key] = true
			}
		}
	}
}
