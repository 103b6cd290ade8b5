package main

import (
	"context"
	"os"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"coachcrm/internal/analytics"
	"coachcrm/internal/caching"
	"coachcrm/internal/config"
	"coachcrm/internal/handlers"
	"coachcrm/internal/jobs"
	"coachcrm/internal/jobs/background"
	"coachcrm/internal/middleware"
	"coachcrm/internal/repositories"
	"coachcrm/internal/services"
	"coachcrm/pkg/database"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Warn().Msg("using generated JWT secret, set jwt.secret for production")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	mediaSvc, err := services.NewMediaService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media service")
	}
	if err := mediaSvc.EnsureBucketExists(context.Background(), cfg.Minio.Bucket); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure media bucket")
	}

	// Repositories
	trainerRepo := repositories.NewTrainerRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	installmentRepo := repositories.NewInstallmentRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)
	checkInRepo := repositories.NewCheckInRepo(pool)
	teamRepo := repositories.NewTeamAssignmentRepo(pool)
	labelRepo := repositories.NewLabelRepo(pool)
	taskRepo := repositories.NewTaskRepo(pool)
	markerRepo := repositories.NewDeletedTaskMarkerRepo(pool)
	imageRepo := repositories.NewImageRepo(pool)
	formRepo := repositories.NewFormRepo(pool)

	// Services
	formSvc := services.NewFormService(formRepo, cacheSvc)
	taskSvc := services.NewTaskService(pool, taskRepo, markerRepo)
	onboardingSvc := services.NewOnboardingService(
		pool, clientRepo, subscriptionRepo, installmentRepo, noteRepo, checkInRepo,
		teamRepo, labelRepo, imageRepo, formSvc, taskSvc, mediaSvc, cfg.Minio.Bucket)
	clientSvc := services.NewClientService(
		pool, clientRepo, subscriptionRepo, installmentRepo, noteRepo, checkInRepo,
		teamRepo, labelRepo, taskRepo, markerRepo, imageRepo, formSvc, mediaSvc, cfg.Minio.Bucket)
	analyticsSvc := analytics.NewService(clientSvc, taskRepo, cacheSvc)

	// Background jobs
	statsRefresh := jobs.NewStatsRefreshService(analyticsSvc, trainerRepo)
	taskSweep := jobs.NewTaskSweepService(taskRepo, trainerRepo)
	scheduler, err := background.NewJobScheduler(statsRefresh, taskSweep)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers
	clientHandlers := handlers.NewClientHandlers(onboardingSvc, clientSvc)
	taskHandlers := handlers.NewTaskHandlers(taskSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// Protected API routes
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(jwtSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}))
	v1.Use(middleware.TrainerContext(trainerRepo))

	v1.POST("/clients", clientHandlers.CreateClient)
	v1.GET("/clients", clientHandlers.ListClients)
	v1.GET("/clients/:id", clientHandlers.GetClient)
	v1.PUT("/clients/:id", clientHandlers.UpdateClient)
	v1.DELETE("/clients/:id", clientHandlers.DeleteClient)
	v1.GET("/clients/:id/images/:imageId/url", clientHandlers.GetTransactionImageURL)
	v1.POST("/installments/:id/images", clientHandlers.UploadTransactionImage)
	v1.POST("/subscriptions/:id/images", clientHandlers.UploadSubscriptionImage)

	v1.GET("/tasks", taskHandlers.ListTasks)
	v1.DELETE("/tasks/:id", taskHandlers.DeleteTask)

	v1.GET("/dashboard/stats", dashboardHandlers.GetStats)

	log.Info().Str("address", cfg.Server.Address).Msg("starting server")
	if err := e.Start(cfg.Server.Address); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
