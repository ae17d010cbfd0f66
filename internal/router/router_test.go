package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authHandler "github.com/hospitalvida/atendimento-api/internal/handler/auth"
	consultationHandler "github.com/hospitalvida/atendimento-api/internal/handler/consultation"
	medicationHandler "github.com/hospitalvida/atendimento-api/internal/handler/medication"
	patientHandler "github.com/hospitalvida/atendimento-api/internal/handler/patient"
	reportHandler "github.com/hospitalvida/atendimento-api/internal/handler/report"
	triageHandler "github.com/hospitalvida/atendimento-api/internal/handler/triage"
	userHandler "github.com/hospitalvida/atendimento-api/internal/handler/user"
	"github.com/hospitalvida/atendimento-api/internal/middleware"
	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
	authService "github.com/hospitalvida/atendimento-api/internal/service/auth"
	directoryService "github.com/hospitalvida/atendimento-api/internal/service/directory"
	reportService "github.com/hospitalvida/atendimento-api/internal/service/report"
	userService "github.com/hospitalvida/atendimento-api/internal/service/user"
	workflowService "github.com/hospitalvida/atendimento-api/internal/service/workflow"
	"github.com/hospitalvida/atendimento-api/pkg/auth"
	"github.com/hospitalvida/atendimento-api/pkg/security"
	"github.com/hospitalvida/atendimento-api/pkg/validator"
)

// newTestEngine wires the full router the way cmd/api does, over the memory
// store. Built once: the metrics middleware registers prometheus collectors
// that cannot be registered twice in one process.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterCustomValidations())

	store := memory.NewStore()
	workflowSvc := workflowService.NewService(store, []model.Nurse{{ID: "1", Name: "Ana Silva"}}, nil)
	directorySvc := directoryService.NewService(store.Patients)
	workflowSvc.SetProjections(directorySvc)
	reportSvc := reportService.NewService(store)

	hasher := security.NewBcryptHasher(4)
	jwtSvc := auth.NewJWTService("test-secret", "test-refresh", time.Hour, 24*time.Hour)
	authSvc := authService.NewService(store.Users, jwtSvc, hasher)
	userSvc := userService.NewService(store.Users, hasher, nil)

	r := NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(workflowSvc, directorySvc, store.Outbox),
		triageHandler.NewHandler(workflowSvc, store.Outbox),
		consultationHandler.NewHandler(workflowSvc, store.Outbox),
		medicationHandler.NewHandler(workflowSvc, store.Outbox),
		reportHandler.NewHandler(reportSvc),
		userHandler.NewHandler(userSvc),
		Config{
			RateLimit:     1000,
			RateBurst:     1000,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "atendimento_test",
		},
	)
	r.Setup()

	// Seed a doctor account so protected routes can be exercised.
	hash, err := hasher.Hash("senha-segura")
	require.NoError(t, err)
	require.NoError(t, store.Users.Create(context.Background(), &model.User{
		Email:        "medica@hospitalvida.com.br",
		Name:         "Dra. Lima",
		Role:         model.RoleDoctor,
		PasswordHash: hash,
	}))

	return r.Engine()
}

func TestRouterEndToEnd(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("health is public", func(t *testing.T) {
		for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("metrics endpoint is mounted", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var token string
	t.Run("login issues tokens", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{
			"email":    "medica@hospitalvida.com.br",
			"password": "senha-segura",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data model.TokenResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Data.AccessToken)
		token = resp.Data.AccessToken
	})

	t.Run("token opens the workflow routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user management is admin only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
