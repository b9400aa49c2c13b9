package handlers

import (
	"net/http"

	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/dto"
	"github.com/jg4611/mad2-by-amit/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *service.QuizService
	clock       clock.Clock
}

func NewQuizHandler(quizService *service.QuizService, clk clock.Clock) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		clock:       clk,
	}
}

// CreateQuiz godoc
// @Summary Create a quiz under a chapter
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.CreateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	startTime, err := clock.ParseCivil(req.StartTime)
	if err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid datetime format. Use YYYY-MM-DD HH:MM")
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), service.CreateQuizInput{
		ChapterID:       req.ChapterID,
		Title:           req.Title,
		StartTime:       startTime,
		DurationHours:   req.DurationHours,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateQuizResponse{
		Message: "Quiz created",
		Quiz:    quizToDTO(quiz, h.quizService.Status(quiz, h.clock.Now())),
	})
}

// UpdateQuiz godoc
// @Summary Update quiz fields
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Fields to change"
// @Success 200 {object} dto.CreateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.UpdateQuizInput{
		ChapterID:       req.ChapterID,
		Title:           req.Title,
		DurationHours:   req.DurationHours,
		DurationMinutes: req.DurationMinutes,
	}

	if req.StartTime != nil && *req.StartTime != "" {
		startTime, err := clock.ParseCivil(*req.StartTime)
		if err != nil {
			dto.JsonError(c, http.StatusBadRequest, "Invalid datetime format. Use YYYY-MM-DD HH:MM")
			return
		}
		input.StartTime = &startTime
	}

	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateQuizResponse{
		Message: "Quiz updated successfully",
		Quiz:    quizToDTO(quiz, h.quizService.Status(quiz, h.clock.Now())),
	})
}

// ToggleQuiz godoc
// @Summary Flip quiz activation
// @Description Deactivating a quiz inside an open window stamps its end time, closing the window for good.
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.ToggleQuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quizzes/{id}/toggle [patch]
func (h *QuizHandler) ToggleQuiz(c *gin.Context) {
	quiz, err := h.quizService.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Quiz deactivated"
	if quiz.IsActive {
		message = "Quiz activated"
	}

	c.JSON(http.StatusOK, dto.ToggleQuizResponse{
		Message:  message,
		IsActive: quiz.IsActive,
	})
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions and scores
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	if err := h.quizService.DeleteQuiz(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Quiz deleted successfully"})
}

// ListQuizzes godoc
// @Summary List every quiz with its current status tag
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizDTO
// @Router /api/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.clock.Now()
	out := make([]dto.QuizDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, quizToDTO(quiz, h.quizService.Status(quiz, now)))
	}

	c.JSON(http.StatusOK, out)
}

// ListAvailable godoc
// @Summary List the quizzes a learner can start right now
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizDTO
// @Router /api/quizzes/available [get]
func (h *QuizHandler) ListAvailable(c *gin.Context) {
	quizzes, err := h.quizService.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.clock.Now()
	out := make([]dto.QuizDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, quizToDTO(quiz, h.quizService.Status(quiz, now)))
	}

	c.JSON(http.StatusOK, out)
}

// GetQuizForAttempt godoc
// @Summary Fetch quiz content for an attempt
// @Description Serves the quiz with its questions, gated on the window being open at this moment.
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizWithQuestionsDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quizzes/{id}/attempt [get]
func (h *QuizHandler) GetQuizForAttempt(c *gin.Context) {
	quiz, questions, err := h.quizService.GetQuizForAttempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := dto.QuizWithQuestionsDTO{
		QuizDTO: quizToDTO(quiz, h.quizService.Status(quiz, h.clock.Now())),
	}
	for _, question := range questions {
		out.Questions = append(out.Questions, questionToDTO(question))
	}

	c.JSON(http.StatusOK, out)
}
