package consultation

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hospitalvida/atendimento-api/internal/handler"
	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	"github.com/hospitalvida/atendimento-api/internal/service/workflow"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

type Handler struct {
	workflowSvc *workflow.Service
	outboxRepo  repository.OutboxRepository
}

func NewHandler(workflowSvc *workflow.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{workflowSvc: workflowSvc, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.PUT("/patients/:id/consultation", h.SubmitConsultation)
	r.GET("/patients/:id/consultation", h.GetConsultation)
}

func (h *Handler) SubmitConsultation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	var req model.SubmitConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	record, err := h.workflowSvc.SubmitConsultation(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.appendEvent(c, model.EventConsultationDone, record)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) GetConsultation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	record, err := h.workflowSvc.ConsultationOf(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if record == nil {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) appendEvent(c *gin.Context, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to marshal outbox payload")
		return
	}
	if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to append outbox event")
	}
}
