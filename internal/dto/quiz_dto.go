package dto

type CreateQuizRequest struct {
	Title           string `json:"title" binding:"required"`
	ChapterID       string `json:"chapter_id" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationHours   int    `json:"duration_hours"`
	DurationMinutes int    `json:"duration_minutes"`
}

type UpdateQuizRequest struct {
	Title           *string `json:"title"`
	ChapterID       *string `json:"chapter_id"`
	StartTime       *string `json:"start_time"`
	DurationHours   *int    `json:"duration_hours"`
	DurationMinutes *int    `json:"duration_minutes"`
}

type QuizDTO struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ChapterID       string `json:"chapter_id"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	DurationHours   int    `json:"duration_hours"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	IsActive        bool   `json:"is_active"`
}

type CreateQuizResponse struct {
	Message string  `json:"message"`
	Quiz    QuizDTO `json:"quiz"`
}

type ToggleQuizResponse struct {
	Message  string `json:"message"`
	IsActive bool   `json:"is_active"`
}

type QuestionDTO struct {
	ID            string `json:"id"`
	QuizID        string `json:"quiz_id"`
	QuestionText  string `json:"question_text"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectOption int    `json:"correct_option,omitempty"`
}

type QuizWithQuestionsDTO struct {
	QuizDTO
	Questions []QuestionDTO `json:"questions"`
}

type QuestionRequest struct {
	QuizID        string `json:"quiz_id"`
	QuestionText  string `json:"question_text" binding:"required"`
	Option1       string `json:"option1" binding:"required"`
	Option2       string `json:"option2" binding:"required"`
	Option3       string `json:"option3" binding:"required"`
	Option4       string `json:"option4" binding:"required"`
	CorrectOption int    `json:"correct_option" binding:"required"`
}

type CreateQuestionResponse struct {
	Message    string `json:"message"`
	QuestionID string `json:"id"`
}
