package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hospitalvida/atendimento-api/internal/config"
	authHandler "github.com/hospitalvida/atendimento-api/internal/handler/auth"
	consultationHandler "github.com/hospitalvida/atendimento-api/internal/handler/consultation"
	medicationHandler "github.com/hospitalvida/atendimento-api/internal/handler/medication"
	patientHandler "github.com/hospitalvida/atendimento-api/internal/handler/patient"
	reportHandler "github.com/hospitalvida/atendimento-api/internal/handler/report"
	triageHandler "github.com/hospitalvida/atendimento-api/internal/handler/triage"
	userHandler "github.com/hospitalvida/atendimento-api/internal/handler/user"
	"github.com/hospitalvida/atendimento-api/internal/middleware"
	"github.com/hospitalvida/atendimento-api/internal/repository"
	"github.com/hospitalvida/atendimento-api/internal/repository/memory"
	"github.com/hospitalvida/atendimento-api/internal/repository/postgres"
	"github.com/hospitalvida/atendimento-api/internal/router"
	authService "github.com/hospitalvida/atendimento-api/internal/service/auth"
	directoryService "github.com/hospitalvida/atendimento-api/internal/service/directory"
	reportService "github.com/hospitalvida/atendimento-api/internal/service/report"
	userService "github.com/hospitalvida/atendimento-api/internal/service/user"
	workflowService "github.com/hospitalvida/atendimento-api/internal/service/workflow"
	"github.com/hospitalvida/atendimento-api/pkg/auth"
	"github.com/hospitalvida/atendimento-api/pkg/email"
	"github.com/hospitalvida/atendimento-api/pkg/logger"
	"github.com/hospitalvida/atendimento-api/pkg/messaging/redis"
	"github.com/hospitalvida/atendimento-api/pkg/metrics"
	"github.com/hospitalvida/atendimento-api/pkg/security"
	"github.com/hospitalvida/atendimento-api/pkg/validator"
	"github.com/hospitalvida/atendimento-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterCustomValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer closeStore()

	m := metrics.NewMetrics("atendimento")

	// Services
	workflowSvc := workflowService.NewService(store, cfg.Roster.Nurses, m)
	directorySvc := directoryService.NewService(store.Patients)
	workflowSvc.SetProjections(directorySvc)
	reportSvc := reportService.NewService(store)

	jwtSvc := auth.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshExpiryHours)*time.Hour,
	)
	hasher := security.NewBcryptHasher(0)
	emailSvc := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	authSvc := authService.NewService(store.Users, jwtSvc, hasher)
	userSvc := userService.NewService(store.Users, hasher, emailSvc)

	// Handlers
	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(workflowSvc, directorySvc, store.Outbox)
	triageH := triageHandler.NewHandler(workflowSvc, store.Outbox)
	consultationH := consultationHandler.NewHandler(workflowSvc, store.Outbox)
	medicationH := medicationHandler.NewHandler(workflowSvc, store.Outbox)
	reportH := reportHandler.NewHandler(reportSvc)
	userH := userHandler.NewHandler(userSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		patientH,
		triageH,
		consultationH,
		medicationH,
		reportH,
		userH,
		router.Config{
			RateLimit:     100,
			RateBurst:     200,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "atendimento_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification worker rides along when a broker is configured.
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}, logger.NewLogger(nil).Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(store.Outbox, broker, worker.OutboxProcessorConfig{
			BatchSize:     100,
			PollInterval:  5 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    time.Second,
		}, logger.NewLogger(nil), m)
		go processor.Start(ctx)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// buildStore selects the record store driver from configuration.
func buildStore(cfg *config.Config) (*repository.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewStore(), func() {}, nil
	case "postgres", "":
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
