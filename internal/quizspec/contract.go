package quizspec

import (
	"strings"
	"unicode/utf8"
)

const (
	MinQuestionCount     = 1
	MaxQuestionCount     = 30
	DefaultQuestionCount = 10
	DefaultChoiceCount   = 4

	QuestionTypeMultipleChoice = "multiple_choice"

	// VariationTemperature is used for regeneration when the caller gives none.
	VariationTemperature float32 = 0.9

	schemaName = "quiz_payload"
)

// ContextMeta is the optional descriptive context of a request. Every field
// may be omitted independently.
type ContextMeta struct {
	Topic       string `json:"topic,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Level       string `json:"level,omitempty"`
	Institution string `json:"institution,omitempty"`
	Profile     string `json:"profile,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (m ContextMeta) IsZero() bool {
	return m == ContextMeta{}
}

// Request is the desired shape of a quiz before it is turned into a contract.
type Request struct {
	Language       string
	StrictLanguage bool
	Difficulty     string
	QuestionCount  int
	ChoiceCount    int
	Context        ContextMeta
	// SourceText is nil in topic mode.
	SourceText *string
	// AllowGeneralKnowledge lets wrong choices draw on general knowledge even
	// when the quiz is grounded in source text.
	AllowGeneralKnowledge bool

	Variation   string
	Temperature float32
}

// Contract is everything a generation call has to satisfy.
type Contract struct {
	Language       string
	LanguageName   string
	StrictLanguage bool
	Difficulty     Difficulty
	QuestionCount  int
	ChoiceCount    int
	QuestionType   string
	Grounded       bool

	SystemPrompt string
	UserPrompt   string
	Rules        []string

	SchemaName string
	// Schema is sent to the model; it is strict about extra properties.
	Schema map[string]any
	// ValidationSchema is what parsed output is checked against. It tolerates
	// extra properties and leaves counts to the semantic checks.
	ValidationSchema map[string]any

	FallbackTitle string
	Variation     string
	Temperature   float32
}

type Options struct {
	DefaultLanguage string
	MaxSourceChars  int
}

type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build turns req into a contract. It performs no I/O and, for a fixed
// variation token, always returns the same contract.
func (b *Builder) Build(req Request) Contract {
	lang := NormalizeLanguage(req.Language, b.opts.DefaultLanguage)
	langName, _ := LanguageName(lang)

	c := Contract{
		Language:       lang,
		LanguageName:   langName,
		StrictLanguage: req.StrictLanguage,
		Difficulty:     NormalizeDifficulty(req.Difficulty),
		QuestionCount:  ClampQuestionCount(req.QuestionCount),
		ChoiceCount:    NormalizeChoiceCount(req.ChoiceCount),
		QuestionType:   QuestionTypeMultipleChoice,
		SchemaName:     schemaName,
		FallbackTitle:  fallbackTitle(req.Context),
		Variation:      strings.TrimSpace(req.Variation),
		Temperature:    req.Temperature,
	}

	var source string
	if req.SourceText != nil {
		source = truncateRunes(strings.TrimSpace(*req.SourceText), b.opts.MaxSourceChars)
		c.Grounded = source != ""
	}

	if c.Variation != "" && c.Temperature <= 0 {
		c.Temperature = VariationTemperature
	}

	c.Rules = buildRules(c, req.AllowGeneralKnowledge)
	c.SystemPrompt = systemPrompt
	c.UserPrompt = renderUserPrompt(c, req.Context, source, req.AllowGeneralKnowledge)
	c.Schema = buildSchema(c, true)
	c.ValidationSchema = buildSchema(c, false)
	return c
}

func ClampQuestionCount(n int) int {
	switch {
	case n < MinQuestionCount:
		return DefaultQuestionCount
	case n > MaxQuestionCount:
		return MaxQuestionCount
	default:
		return n
	}
}

func NormalizeChoiceCount(n int) int {
	if n == 3 || n == 4 {
		return n
	}
	return DefaultChoiceCount
}

func fallbackTitle(m ContextMeta) string {
	for _, s := range []string{m.Topic, m.Subject} {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return "Quiz"
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
