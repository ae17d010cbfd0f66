package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalvida/atendimento-api/internal/middleware"
	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
	"github.com/hospitalvida/atendimento-api/internal/service/directory"
	"github.com/hospitalvida/atendimento-api/internal/service/workflow"
	"github.com/hospitalvida/atendimento-api/pkg/validator"
)

func newTestRouter(t *testing.T) (*gin.Engine, *repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterCustomValidations())

	store := memory.NewStore()
	workflowSvc := workflow.NewService(store, []model.Nurse{{ID: "1", Name: "Ana Silva"}}, nil)
	directorySvc := directory.NewService(store.Patients)
	workflowSvc.SetProjections(directorySvc)

	h := NewHandler(workflowSvc, directorySvc, store.Outbox)

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api)
	return engine, store
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func validIntake() map[string]interface{} {
	return map[string]interface{}{
		"name":       "Ana Souza",
		"birth_date": "1990-01-01",
		"gender":     "F",
		"cpf":        "111.222.333-44",
		"phone":      "11988887777",
		"address":    "Rua das Flores, 120",
	}
}

func TestRegisterPatientHTTP(t *testing.T) {
	engine, store := newTestRouter(t)

	w := postJSON(t, engine, "/api/v1/patients", validIntake())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string        `json:"status"`
		Data   model.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, model.PatientStatusWaiting, resp.Data.Status)
	assert.Equal(t, "Ana Souza", resp.Data.Name)

	// Intake appends a notification event.
	pending, err := store.Outbox.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.EventPatientRegistered, pending[0].EventType)
}

func TestRegisterPatientRejectsBadCPF(t *testing.T) {
	engine, _ := newTestRouter(t)

	body := validIntake()
	body["cpf"] = "11122233344"
	w := postJSON(t, engine, "/api/v1/patients", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterPatientRejectsBadBirthDate(t *testing.T) {
	engine, _ := newTestRouter(t)

	body := validIntake()
	body["birth_date"] = "01/01/1990"
	w := postJSON(t, engine, "/api/v1/patients", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPatientsFilterByStatus(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := postJSON(t, engine, "/api/v1/patients", validIntake())
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?status=waiting", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	bad := httptest.NewRequest(http.MethodGet, "/api/v1/patients?status=unknown", nil)
	badRec := httptest.NewRecorder()
	engine.ServeHTTP(badRec, bad)
	assert.Equal(t, http.StatusBadRequest, badRec.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	engine, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/6f1c8a6e-53a1-4a3e-9f44-000000000000", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusEscapeHatch(t *testing.T) {
	engine, store := newTestRouter(t)

	w := postJSON(t, engine, "/api/v1/patients", validIntake())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data model.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	payload, _ := json.Marshal(map[string]string{"status": "completed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/patients/"+created.Data.ID.String()+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.Patients.Get(context.Background(), created.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PatientStatusCompleted, stored.Status)
}
