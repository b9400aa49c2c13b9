package handlers

import (
	"net/http"

	"github.com/jg4611/mad2-by-amit/internal/dto"
	"github.com/jg4611/mad2-by-amit/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// CreateQuestion godoc
// @Summary Add a question to a quiz
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.CreateQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), service.QuestionInput{
		QuizID:        req.QuizID,
		QuestionText:  req.QuestionText,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateQuestionResponse{
		Message:    "Question created",
		QuestionID: question.ID,
	})
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.questionService.UpdateQuestion(c.Request.Context(), c.Param("id"), service.QuestionInput{
		QuestionText:  req.QuestionText,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question updated"})
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.questionService.DeleteQuestion(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted"})
}

// ListQuestions godoc
// @Summary List every question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuestionDTO
// @Router /api/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListQuestions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.QuestionDTO, 0, len(questions))
	for _, question := range questions {
		out = append(out, questionToDTO(question))
	}

	c.JSON(http.StatusOK, out)
}
