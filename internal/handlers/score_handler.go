package handlers

import (
	"net/http"

	"github.com/jg4611/mad2-by-amit/internal/dto"
	"github.com/jg4611/mad2-by-amit/internal/service"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreService *service.ScoreService
}

func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// SubmitQuiz godoc
// @Summary Record a completed attempt
// @Description Availability is re-validated server-side: a listing that showed the quiz as active earlier carries no weight here.
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitQuizRequest true "Attempt result"
// @Success 201 {object} dto.SubmitQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/scores [post]
func (h *ScoreHandler) SubmitQuiz(c *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	quizID := req.ResolvedQuizID()
	if quizID == "" {
		dto.JsonError(c, http.StatusBadRequest, "quiz_id is required")
		return
	}

	userID := c.GetString("user_id")

	score, err := h.scoreService.Record(c.Request.Context(), userID, quizID, *req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitQuizResponse{
		Message: "Quiz submitted successfully",
		Score:   score.Score,
	})
}

// GetQuizHistory godoc
// @Summary List the caller's past attempts
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ScoreHistoryEntry
// @Router /api/scores [get]
func (h *ScoreHandler) GetQuizHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	history, err := h.scoreService.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.ScoreHistoryEntry, 0, len(history))
	for _, entry := range history {
		out = append(out, dto.ScoreHistoryEntry{
			QuizID:         entry.QuizID,
			QuizTitle:      entry.QuizTitle,
			Score:          entry.Score,
			TotalQuestions: entry.TotalQuestions,
			DateTaken:      entry.DateTaken.Format("2006-01-02 15:04:05"),
		})
	}

	c.JSON(http.StatusOK, out)
}
