package report

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hospitalvida/atendimento-api/internal/handler"
	"github.com/hospitalvida/atendimento-api/internal/service/report"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

type Handler struct {
	reportSvc *report.Service
}

func NewHandler(reportSvc *report.Service) *Handler {
	return &Handler{reportSvc: reportSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports/summary", h.GetSummary)
	r.GET("/patients/:id/report", h.GetPatientPDF)
}

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.reportSvc.Summary(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) GetPatientPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	pdf, err := h.reportSvc.PatientSummaryPDF(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=patient-summary.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
