package attempt

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attempt struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID     string     `gorm:"type:text;not null;index" json:"user_id"`
	Total      int        `gorm:"not null" json:"total"`
	Score      int        `gorm:"not null;default:0" json:"score"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	Answers []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Attempt) Finished() bool { return a.FinishedAt != nil }

// AttemptAnswer is unique per (attempt, question); a resubmission replaces it.
type AttemptAnswer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	AttemptID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"-"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	UserAnswer string    `gorm:"type:text;not null" json:"user_answer"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	AnsweredAt time.Time `gorm:"not null" json:"answered_at"`
}

func (a *AttemptAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
