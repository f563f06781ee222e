package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

type SourceType string

const (
	SourceTopic  SourceType = "topic"
	SourcePDF    SourceType = "pdf"
	SourceImages SourceType = "images"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceTopic, SourcePDF, SourceImages:
		return true
	}
	return false
}

// Status hides a quiz from readers until all of its questions are stored.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
)

// Settings are the generation parameters a regeneration needs to reproduce a
// compatible quiz.
type Settings struct {
	QuestionCount         int                  `json:"question_count"`
	ChoiceCount           int                  `json:"choice_count"`
	Difficulty            string               `json:"difficulty"`
	Language              string               `json:"language"`
	StrictLanguage        bool                 `json:"strict_language"`
	QuestionType          string               `json:"question_type"`
	AllowGeneralKnowledge bool                 `json:"allow_general_knowledge"`
	Context               quizspec.ContextMeta `json:"context"`
}

type Quiz struct {
	ID             uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string                       `gorm:"type:text;not null;index" json:"user_id"`
	Title          string                       `gorm:"type:text;not null" json:"title"`
	Language       string                       `gorm:"type:varchar(8);not null" json:"language"`
	Difficulty     string                       `gorm:"type:varchar(16);not null" json:"difficulty"`
	SourceType     SourceType                   `gorm:"type:varchar(16);not null" json:"source_type"`
	SourceMeta     datatypes.JSONMap            `json:"source_meta"`
	SourceText     *string                      `gorm:"type:text" json:"-"`
	Settings       datatypes.JSONType[Settings] `json:"settings"`
	Status         Status                       `gorm:"type:varchar(16);not null;index" json:"-"`
	TotalQuestions int                          `gorm:"not null;default:0" json:"total_questions"`
	CreatedAt      time.Time                    `gorm:"autoCreateTime" json:"created_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// HasSource reports whether the quiz kept text it can be regenerated from.
func (q *Quiz) HasSource() bool {
	return q.SourceText != nil && *q.SourceText != ""
}

type QuizQuestion struct {
	ID           uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID       uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_quiz_question_idx" json:"quiz_id"`
	Idx          int                          `gorm:"not null;uniqueIndex:idx_quiz_question_idx" json:"idx"`
	Type         string                       `gorm:"type:varchar(32);not null" json:"type"`
	QuestionText string                       `gorm:"type:text;not null" json:"question"`
	Choices      datatypes.JSONType[[]string] `gorm:"not null" json:"choices"`
	Answer       string                       `gorm:"type:text;not null" json:"answer"`
	Explanation  string                       `gorm:"type:text;not null" json:"explanation"`
}

func (q *QuizQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Summary is the listing projection of a quiz. It carries no question bodies.
type Summary struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Language       string     `json:"language"`
	Difficulty     string     `json:"difficulty"`
	SourceType     SourceType `json:"source_type"`
	TotalQuestions int        `json:"total_questions"`
	CreatedAt      time.Time  `json:"created_at"`
}
