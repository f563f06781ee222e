package aiquiz

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
)

// Rule names reported in a SemanticError.
const (
	RuleQuestionCount   = "question count mismatch"
	RuleChoiceCount     = "choice count mismatch"
	RuleDuplicateChoice = "duplicate choices"
	RuleAnswerMissing   = "answer not in choices"
	RuleDuplicateQ      = "duplicate question"
	RuleEmptyQuestion   = "empty question text"
	RuleEmptyChoice     = "empty choice"
	RuleEmptyExplain    = "empty explanation"
	RuleLanguage        = "language mismatch"
)

// FormatError means the output could not be read as a quiz payload at all.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: malformed output: %s", apperr.ErrGenerationFailed, e.Reason)
}

func (e *FormatError) Unwrap() error { return apperr.ErrGenerationFailed }

type Violation struct {
	Rule   string
	Detail string
}

func (v Violation) String() string {
	if v.Detail == "" {
		return v.Rule
	}
	return v.Rule + " (" + v.Detail + ")"
}

// SemanticError means the output parsed but broke one or more quiz rules.
type SemanticError struct {
	Violations []Violation
}

func (e *SemanticError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", apperr.ErrGenerationFailed, strings.Join(parts, "; "))
}

func (e *SemanticError) Unwrap() error { return apperr.ErrGenerationFailed }

// Rules returns the distinct rule names in the order they were first seen.
func (e *SemanticError) Rules() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range e.Violations {
		if !seen[v.Rule] {
			seen[v.Rule] = true
			out = append(out, v.Rule)
		}
	}
	return out
}

func unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperr.ErrGenerationUnavailable, provider, err)
}
