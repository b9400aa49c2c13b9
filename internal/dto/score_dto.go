package dto

type SubmitQuizRequest struct {
	// Both snake_case and camelCase forms are accepted from clients.
	QuizID    string `json:"quiz_id"`
	QuizIDAlt string `json:"quizId"`
	Score     *int   `json:"score" binding:"required"`
}

func (r SubmitQuizRequest) ResolvedQuizID() string {
	if r.QuizID != "" {
		return r.QuizID
	}
	return r.QuizIDAlt
}

type SubmitQuizResponse struct {
	Message string `json:"message"`
	Score   int    `json:"score"`
}

type ScoreHistoryEntry struct {
	QuizID         string `json:"quiz_id"`
	QuizTitle      string `json:"quiz_title"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	DateTaken      string `json:"date_taken"`
}
