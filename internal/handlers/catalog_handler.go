package handlers

import (
	"net/http"

	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/dto"
	"github.com/jg4611/mad2-by-amit/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	quizService    *service.QuizService
	clock          clock.Clock
}

func NewCatalogHandler(catalogService *service.CatalogService, quizService *service.QuizService, clk clock.Clock) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		quizService:    quizService,
		clock:          clk,
	}
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubjectRequest true "Subject"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/subjects [post]
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	subject, err := h.catalogService.CreateSubject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{Message: "Subject created", ID: subject.ID})
}

// UpdateSubject godoc
// @Summary Rename a subject
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Param request body dto.SubjectRequest true "Subject"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/subjects/{id} [put]
func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogService.UpdateSubject(c.Request.Context(), c.Param("id"), req.Name, req.Description); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Subject updated"})
}

// DeleteSubject godoc
// @Summary Delete a subject and everything under it
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/subjects/{id} [delete]
func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	if err := h.catalogService.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Subject deleted"})
}

// CreateChapter godoc
// @Summary Create a chapter under a subject
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChapterRequest true "Chapter"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters [post]
func (h *CatalogHandler) CreateChapter(c *gin.Context) {
	var req dto.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	chapter, err := h.catalogService.CreateChapter(c.Request.Context(), req.SubjectID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{Message: "Chapter created", ID: chapter.ID})
}

// UpdateChapter godoc
// @Summary Update a chapter
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Param request body dto.UpdateChapterRequest true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{id} [put]
func (h *CatalogHandler) UpdateChapter(c *gin.Context) {
	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.catalogService.UpdateChapter(c.Request.Context(), c.Param("id"), req.SubjectID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Chapter updated"})
}

// DeleteChapter godoc
// @Summary Delete a chapter and everything under it
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{id} [delete]
func (h *CatalogHandler) DeleteChapter(c *gin.Context) {
	if err := h.catalogService.DeleteChapter(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Chapter deleted"})
}

// ListChapters godoc
// @Summary List every chapter
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ChapterDTO
// @Router /api/chapters [get]
func (h *CatalogHandler) ListChapters(c *gin.Context) {
	chapters, err := h.catalogService.ListChapters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.ChapterDTO, 0, len(chapters))
	for _, chapter := range chapters {
		out = append(out, dto.ChapterDTO{
			ID:          chapter.ID,
			SubjectID:   chapter.SubjectID,
			Name:        chapter.Name,
			Description: chapter.Description,
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetSubjects godoc
// @Summary List the catalog tree
// @Description Returns subjects with their chapters and quizzes, each quiz tagged with its current status.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubjectTreeDTO
// @Router /api/subjects [get]
func (h *CatalogHandler) GetSubjects(c *gin.Context) {
	tree, err := h.catalogService.GetSubjectTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.clock.Now()
	out := make([]dto.SubjectTreeDTO, 0, len(tree))
	for _, subjectNode := range tree {
		subjectDTO := dto.SubjectTreeDTO{
			ID:          subjectNode.Subject.ID,
			Name:        subjectNode.Subject.Name,
			Description: subjectNode.Subject.Description,
			Chapters:    []dto.ChapterTreeDTO{},
		}
		for _, chapterNode := range subjectNode.Chapters {
			chapterDTO := dto.ChapterTreeDTO{
				ID:          chapterNode.Chapter.ID,
				Name:        chapterNode.Chapter.Name,
				Description: chapterNode.Chapter.Description,
				Quizzes:     []dto.QuizDTO{},
			}
			for _, quiz := range chapterNode.Quizzes {
				chapterDTO.Quizzes = append(chapterDTO.Quizzes, quizToDTO(quiz, h.quizService.Status(quiz, now)))
			}
			subjectDTO.Chapters = append(subjectDTO.Chapters, chapterDTO)
		}
		out = append(out, subjectDTO)
	}

	c.JSON(http.StatusOK, out)
}
