package dto

type SubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ChapterRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SubjectID   string `json:"subject_id"`
}

type UpdateChapterRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SubjectID   *string `json:"subject_id"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type ChapterDTO struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SubjectTreeDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Chapters    []ChapterTreeDTO `json:"chapters"`
}

type ChapterTreeDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quizzes     []QuizDTO `json:"quizzes"`
}
