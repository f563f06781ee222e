package attempt

type StartAttemptDTO struct {
	QuizID string `json:"quiz_id" validate:"required,uuid"`
}

type SubmitAnswerDTO struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	Answer     string `json:"answer" validate:"required,max=2000"`
}

type SubmitAnswerResponse struct {
	QuestionID string `json:"question_id"`
	IsCorrect  bool   `json:"is_correct"`
}
