package aiquiz

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

func validatePayload(c quizspec.Contract, p *payload) []Violation {
	var out []Violation

	if len(p.Questions) != c.QuestionCount {
		out = append(out, Violation{
			Rule:   RuleQuestionCount,
			Detail: fmt.Sprintf("got %d, want %d", len(p.Questions), c.QuestionCount),
		})
	}

	seenQuestions := make(map[string]int)
	for i, q := range p.Questions {
		n := i + 1

		text := strings.TrimSpace(q.Question)
		if text == "" {
			out = append(out, Violation{Rule: RuleEmptyQuestion, Detail: fmt.Sprintf("question %d", n)})
		} else {
			key := normalizeText(text)
			if prev, ok := seenQuestions[key]; ok {
				out = append(out, Violation{Rule: RuleDuplicateQ, Detail: fmt.Sprintf("questions %d and %d", prev, n)})
			} else {
				seenQuestions[key] = n
			}
		}

		if strings.TrimSpace(q.Explanation) == "" {
			out = append(out, Violation{Rule: RuleEmptyExplain, Detail: fmt.Sprintf("question %d", n)})
		}

		if len(q.Choices) != c.ChoiceCount {
			out = append(out, Violation{
				Rule:   RuleChoiceCount,
				Detail: fmt.Sprintf("question %d has %d, want %d", n, len(q.Choices), c.ChoiceCount),
			})
		}

		seenChoices := make(map[string]bool, len(q.Choices))
		for _, ch := range q.Choices {
			key := strings.ToLower(strings.TrimSpace(ch))
			if key == "" {
				out = append(out, Violation{Rule: RuleEmptyChoice, Detail: fmt.Sprintf("question %d", n)})
				continue
			}
			if seenChoices[key] {
				out = append(out, Violation{Rule: RuleDuplicateChoice, Detail: fmt.Sprintf("question %d repeats %q", n, strings.TrimSpace(ch))})
			}
			seenChoices[key] = true
		}

		if _, ok := matchAnswer(q.Answer, q.Choices); !ok {
			out = append(out, Violation{
				Rule:   RuleAnswerMissing,
				Detail: fmt.Sprintf("question %d answer %q", n, strings.TrimSpace(q.Answer)),
			})
		}
	}

	if c.StrictLanguage {
		if detected, mismatch := languageMismatch(payloadText(p), c.Language); mismatch {
			out = append(out, Violation{Rule: RuleLanguage, Detail: fmt.Sprintf("looks like %s, want %s", detected, c.Language)})
		}
	}

	return out
}

// matchAnswer finds the choice the answer refers to: an exact trimmed match
// first, then a unique case-insensitive one.
func matchAnswer(answer string, choices []string) (string, bool) {
	a := strings.TrimSpace(answer)
	if a == "" {
		return "", false
	}
	for _, ch := range choices {
		if strings.TrimSpace(ch) == a {
			return strings.TrimSpace(ch), true
		}
	}

	var found string
	matches := 0
	for _, ch := range choices {
		if strings.EqualFold(strings.TrimSpace(ch), a) {
			found = strings.TrimSpace(ch)
			matches++
		}
	}
	return found, matches == 1
}

// normalizeText lowercases, drops punctuation and collapses whitespace.
func normalizeText(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(r)
			space = false
		default:
			space = true
		}
	}
	return sb.String()
}

func payloadText(p *payload) string {
	var sb strings.Builder
	for _, q := range p.Questions {
		sb.WriteString(q.Question)
		sb.WriteByte(' ')
		for _, ch := range q.Choices {
			sb.WriteString(ch)
			sb.WriteByte(' ')
		}
		sb.WriteString(q.Explanation)
		sb.WriteByte(' ')
	}
	return sb.String()
}
