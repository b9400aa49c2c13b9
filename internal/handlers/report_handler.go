package handlers

import (
	"fmt"
	"net/http"

	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.ReportService
	clock         clock.Clock
}

func NewReportHandler(reportService *service.ReportService, clk clock.Clock) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		clock:         clk,
	}
}

// ExportUserPerformance godoc
// @Summary Download the per-user performance report
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV payload"
// @Router /api/reports/user-performance [get]
func (h *ReportHandler) ExportUserPerformance(c *gin.Context) {
	filename := fmt.Sprintf("user_performance_report_%s.csv", h.clock.Now().Format("20060102_150405"))

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := h.reportService.WriteUserPerformanceCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be out; the truncated body is the best we can do.
		c.Status(http.StatusInternalServerError)
	}
}
