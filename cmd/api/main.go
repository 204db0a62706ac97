package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/careaxis/hms-api/internal/config"
	"github.com/careaxis/hms-api/internal/email"
	authHandler "github.com/careaxis/hms-api/internal/handler/auth"
	billingHandler "github.com/careaxis/hms-api/internal/handler/billing"
	branchHandler "github.com/careaxis/hms-api/internal/handler/branch"
	labHandler "github.com/careaxis/hms-api/internal/handler/lab"
	patientHandler "github.com/careaxis/hms-api/internal/handler/patient"
	pharmacyHandler "github.com/careaxis/hms-api/internal/handler/pharmacy"
	telecallHandler "github.com/careaxis/hms-api/internal/handler/telecall"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/repository/postgres"
	redisstore "github.com/careaxis/hms-api/internal/repository/redis"
	"github.com/careaxis/hms-api/internal/router"
	"github.com/careaxis/hms-api/internal/service/access"
	billingService "github.com/careaxis/hms-api/internal/service/billing"
	branchService "github.com/careaxis/hms-api/internal/service/branch"
	labService "github.com/careaxis/hms-api/internal/service/lab"
	patientService "github.com/careaxis/hms-api/internal/service/patient"
	pharmacyService "github.com/careaxis/hms-api/internal/service/pharmacy"
	sessionService "github.com/careaxis/hms-api/internal/service/session"
	telecallService "github.com/careaxis/hms-api/internal/service/telecall"
	"github.com/careaxis/hms-api/pkg/auth"
	"github.com/careaxis/hms-api/pkg/logger"
	redisbroker "github.com/careaxis/hms-api/pkg/messaging/redis"
	"github.com/careaxis/hms-api/pkg/metrics"

	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})
	zerolog.DefaultContextLogger = &appLogger
	log.Logger = appLogger

	m := metrics.NewMetrics("hms")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	store, err := redisstore.NewStore(redisstore.Config{
		URL:        cfg.Redis.URL,
		SessionTTL: cfg.JWT.Expiry(),
	}, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer store.Close()

	broker := redisbroker.NewFromClient(store.Client(), appLogger)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry(), cfg.JWT.Issuer)
	emailSvc := email.NewSMTPService(cfg.SMTP, appLogger)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	branchRepo := postgres.NewBranchRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	collectionRepo := postgres.NewCollectionRepository(db)
	telecallRepo := postgres.NewTelecallRepository(db)
	labTestRepo := postgres.NewLabTestRepository(db)

	// Services
	branchSvc := branchService.NewService(branchRepo, store, broker, appLogger, m)
	if err := branchSvc.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize branch context")
	}

	sessionSvc := sessionService.NewService(
		userRepo,
		menuRepo,
		store,
		store,
		jwtSvc,
		emailSvc,
		branchSvc.CurrentID,
		appLogger,
		m,
	)

	patientSvc := patientService.NewService(patientRepo)
	pharmacySvc := pharmacyService.NewService(prescriptionRepo, patientRepo)
	billingSvc := billingService.NewService(collectionRepo, patientRepo)
	telecallSvc := telecallService.NewService(telecallRepo, appLogger)
	labSvc := labService.NewService(labTestRepo)

	checker := access.NewChecker(cfg.Guard.AllowListPaths, cfg.Guard.AdminUsernames, appLogger, m)
	authMiddleware := middleware.NewAuthMiddleware(sessionSvc, checker, 30*time.Second, time.Minute)

	middleware.RegisterValidators()

	r := router.NewRouter(
		authMiddleware,
		m,
		router.Config{
			RateLimit:  rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:  cfg.Server.RateLimitBurst,
			Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
		authHandler.NewHandler(sessionSvc),
		branchHandler.NewHandler(branchSvc, sessionSvc),
		patientHandler.NewHandler(patientSvc),
		pharmacyHandler.NewHandler(pharmacySvc),
		billingHandler.NewHandler(billingSvc),
		telecallHandler.NewHandler(telecallSvc),
		labHandler.NewHandler(labSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
