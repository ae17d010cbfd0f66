package patient

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hospitalvida/atendimento-api/internal/handler"
	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	"github.com/hospitalvida/atendimento-api/internal/service/directory"
	"github.com/hospitalvida/atendimento-api/internal/service/workflow"
	apperrors "github.com/hospitalvida/atendimento-api/pkg/errors"
)

type Handler struct {
	workflowSvc  *workflow.Service
	directorySvc *directory.Service
	outboxRepo   repository.OutboxRepository
}

func NewHandler(workflowSvc *workflow.Service, directorySvc *directory.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		workflowSvc:  workflowSvc,
		directorySvc: directorySvc,
		outboxRepo:   outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.RegisterPatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/summary", h.GetPatientSummary)
	}
}

// RegisterAdminRoutes mounts the status escape hatch, gated to admins by the router.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PATCH("/patients/:id/status", h.UpdateStatus)
}

// RegisterPatient admits a new patient into the waiting queue.
func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	patient, err := h.workflowSvc.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.appendEvent(c, model.EventPatientRegistered, patient)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) ListPatients(c *gin.Context) {
	ctx := c.Request.Context()

	if status := c.Query("status"); status != "" {
		stage := model.PatientStatus(status)
		if !model.ValidStatus(stage) {
			c.Error(apperrors.Validation("invalid status filter", nil))
			return
		}
		patients, err := h.directorySvc.ListByStatus(ctx, stage)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
		return
	}

	patients, err := h.directorySvc.ListAll(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	patient, err := h.directorySvc.PatientByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

// GetPatientSummary returns the patient together with any triage, consultation
// and medication records accumulated so far.
func (h *Handler) GetPatientSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	ctx := c.Request.Context()
	patient, err := h.workflowSvc.PatientByID(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	triage, err := h.workflowSvc.TriageOf(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	consultation, err := h.workflowSvc.ConsultationOf(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	medications, err := h.workflowSvc.MedicationsOf(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"patient":      patient,
		"triage":       triage,
		"consultation": consultation,
		"medications":  medications,
	}))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid patient ID", err))
		return
	}

	var req model.UpdatePatientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	if err := h.workflowSvc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		c.Error(err)
		return
	}

	h.appendEvent(c, model.EventPatientStatusEdited, gin.H{"patient_id": id, "status": req.Status})
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "status": req.Status}))
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
