package handler

import (
	application "github.com/debtledger/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles read-only reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *application.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *application.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the aggregated ledger position for both entity kinds
func (h *ReportHandler) Summary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
