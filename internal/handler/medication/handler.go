package medication

import (
	"encoding/json"
	"net/http"
	"sort"

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
	r.POST("/patients/:id/medications", h.RecordMedication)
	r.GET("/patients/:id/medications", h.ListMedications)
	r.GET("/nurses", h.ListNurses)
}

// RecordMedication registers an administration against a completed encounter.
func (h *Handler) RecordMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	var req model.SubmitMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	record, err := h.workflowSvc.SubmitMedication(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.appendEvent(c, model.EventMedicationRecorded, record)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) ListMedications(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	records, err := h.workflowSvc.MedicationsOf(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

// ListNurses exposes the configured administration roster.
func (h *Handler) ListNurses(c *gin.Context) {
	roster := h.workflowSvc.Roster()
	nurses := make([]model.Nurse, 0, len(roster))
	for id, name := range roster {
		nurses = append(nurses, model.Nurse{ID: id, Name: name})
	}
	sort.Slice(nurses, func(i, j int) bool { return nurses[i].ID < nurses[j].ID })
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nurses))
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
