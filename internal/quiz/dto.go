package quiz

type QuizWithQuestionsDTO struct {
	Quiz      *Quiz          `json:"quiz"`
	Questions []QuizQuestion `json:"questions"`
}

type CreatedDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"total_questions"`
}
