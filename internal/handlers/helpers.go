package handlers

import (
	"time"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/dto"
	"github.com/jg4611/mad2-by-amit/internal/quizwindow"
	"github.com/jg4611/mad2-by-amit/internal/repository"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	dto.JsonError(c, apperr.HTTPStatus(err), apperr.Message(err))
}

func quizToDTO(quiz *repository.Quiz, status quizwindow.State) dto.QuizDTO {
	out := dto.QuizDTO{
		ID:              quiz.ID,
		Title:           quiz.Title,
		ChapterID:       quiz.ChapterID,
		DurationHours:   quiz.DurationHours,
		DurationMinutes: quiz.DurationMinutes,
		Status:          string(status),
		IsActive:        quiz.IsActive,
	}
	if quiz.StartTime.Valid {
		out.StartTime = quiz.StartTime.Time.Format(time.RFC3339)
	}
	if quiz.EndTime.Valid {
		out.EndTime = quiz.EndTime.Time.Format(time.RFC3339)
	}
	return out
}

// questionToDTO always carries the correct option: scoring happens on the
// client, so the attempt payload needs it as much as the admin views do.
func questionToDTO(question *repository.Question) dto.QuestionDTO {
	return dto.QuestionDTO{
		ID:            question.ID,
		QuizID:        question.QuizID,
		QuestionText:  question.QuestionText,
		Option1:       question.Option1,
		Option2:       question.Option2,
		Option3:       question.Option3,
		Option4:       question.Option4,
		CorrectOption: question.CorrectOption,
	}
}

func userToDTO(user *repository.User) dto.UserDTO {
	out := dto.UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Qualification: user.Qualification,
		Role:          user.Role,
	}
	if user.DateOfBirth.Valid {
		out.DateOfBirth = user.DateOfBirth.Time.Format("2006-01-02")
	}
	return out
}
