package aiquiz

import (
	"strings"

	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

// normalize turns a validated payload into a Result. Positions come from array
// order and answers are snapped onto the exact choice string.
func normalize(c quizspec.Contract, p *payload) (*Result, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = c.FallbackTitle
	}

	res := &Result{
		Title:     title,
		Language:  c.Language,
		Questions: make([]GeneratedQuestion, 0, len(p.Questions)),
	}

	for i, q := range p.Questions {
		choices := make([]string, len(q.Choices))
		for j, ch := range q.Choices {
			choices[j] = strings.TrimSpace(ch)
		}

		answer, ok := matchAnswer(q.Answer, choices)
		if !ok {
			return nil, &SemanticError{Violations: []Violation{{Rule: RuleAnswerMissing}}}
		}

		res.Questions = append(res.Questions, GeneratedQuestion{
			Idx:         i,
			Type:        c.QuestionType,
			Question:    strings.TrimSpace(q.Question),
			Choices:     choices,
			Answer:      answer,
			Explanation: strings.TrimSpace(q.Explanation),
		})
	}
	return res, nil
}
