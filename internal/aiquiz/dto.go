package aiquiz

import "github.com/saulo-duarte/quizgen-lambda/internal/quizspec"

// GenerateRequest is the body shared by the topic, preview and upload
// endpoints. Counts outside the supported range are clamped, not rejected.
type GenerateRequest struct {
	Topic       string `json:"topic" validate:"required,max=500"`
	Subject     string `json:"subject,omitempty" validate:"max=200"`
	Level       string `json:"level,omitempty" validate:"max=200"`
	Institution string `json:"institution,omitempty" validate:"max=200"`
	Profile     string `json:"profile,omitempty" validate:"max=500"`
	Notes       string `json:"notes,omitempty" validate:"max=2000"`

	Language              string `json:"language,omitempty"`
	StrictLanguage        bool   `json:"strict_language,omitempty"`
	Difficulty            string `json:"difficulty,omitempty"`
	QuestionCount         int    `json:"question_count,omitempty"`
	ChoiceCount           int    `json:"choice_count,omitempty"`
	AllowGeneralKnowledge bool   `json:"allow_general_knowledge,omitempty"`
}

func (r GenerateRequest) Context() quizspec.ContextMeta {
	return quizspec.ContextMeta{
		Topic:       r.Topic,
		Subject:     r.Subject,
		Level:       r.Level,
		Institution: r.Institution,
		Profile:     r.Profile,
		Notes:       r.Notes,
	}
}

// SpecRequest builds the contract input. source is nil in topic mode.
func (r GenerateRequest) SpecRequest(source *string) quizspec.Request {
	return quizspec.Request{
		Language:              r.Language,
		StrictLanguage:        r.StrictLanguage,
		Difficulty:            r.Difficulty,
		QuestionCount:         r.QuestionCount,
		ChoiceCount:           r.ChoiceCount,
		Context:               r.Context(),
		SourceText:            source,
		AllowGeneralKnowledge: r.AllowGeneralKnowledge,
	}
}
