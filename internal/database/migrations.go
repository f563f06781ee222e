package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Table layouts as of the migration that created them. They are frozen: a
// later schema change gets a new migration, not an edit here.

type quizV1 struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID         string            `gorm:"type:text;not null;index"`
	Title          string            `gorm:"type:text;not null"`
	Language       string            `gorm:"type:varchar(8);not null"`
	Difficulty     string            `gorm:"type:varchar(16);not null"`
	SourceType     string            `gorm:"type:varchar(16);not null"`
	SourceMeta     datatypes.JSONMap
	SourceText     *string        `gorm:"type:text"`
	Settings       datatypes.JSON `gorm:"not null"`
	Status         string         `gorm:"type:varchar(16);not null;index"`
	TotalQuestions int            `gorm:"not null;default:0"`
	CreatedAt      time.Time      `gorm:"not null;index"`
}

func (quizV1) TableName() string { return "quizzes" }

type questionV1 struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	QuizID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_quiz_question_idx"`
	Quiz         quizV1         `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Idx          int            `gorm:"not null;uniqueIndex:idx_quiz_question_idx"`
	Type         string         `gorm:"type:varchar(32);not null"`
	QuestionText string         `gorm:"type:text;not null"`
	Choices      datatypes.JSON `gorm:"not null"`
	Answer       string         `gorm:"type:text;not null"`
	Explanation  string         `gorm:"type:text;not null"`
}

func (questionV1) TableName() string { return "quiz_questions" }

type attemptV1 struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuizID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Quiz       quizV1    `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	UserID     string    `gorm:"type:text;not null;index"`
	Total      int       `gorm:"not null"`
	Score      int       `gorm:"not null;default:0"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time
}

func (attemptV1) TableName() string { return "attempts" }

type attemptAnswerV1 struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AttemptID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question"`
	Attempt    attemptV1  `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE"`
	QuestionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question"`
	Question   questionV1 `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	UserAnswer string     `gorm:"type:text;not null"`
	IsCorrect  bool       `gorm:"not null"`
	AnsweredAt time.Time  `gorm:"not null"`
}

func (attemptAnswerV1) TableName() string { return "attempt_answers" }

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create quizzes and quiz_questions",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&quizV1{}, &questionV1{})
		},
	},
	{
		Version: 2,
		Name:    "create attempts and attempt_answers",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&attemptV1{}, &attemptAnswerV1{})
		},
	},
}
