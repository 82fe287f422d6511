package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yoockh/hireflow/config"
	"github.com/yoockh/hireflow/internal/api/handlers"
	"github.com/yoockh/hireflow/internal/api/routes"
	"github.com/yoockh/hireflow/internal/cache"
	"github.com/yoockh/hireflow/internal/logger"
	"github.com/yoockh/hireflow/internal/metrics"
	"github.com/yoockh/hireflow/internal/providers/workflow"
	mongorepo "github.com/yoockh/hireflow/internal/repositories/mongo"
	pgrepo "github.com/yoockh/hireflow/internal/repositories/postgres"
	"github.com/yoockh/hireflow/internal/services"
	"github.com/yoockh/hireflow/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Init MongoDB
	if err := config.InitMongo(cfg); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(cfg); err != nil {
		// the store may still be unreachable; sign-ups retry the email index and are refused until it exists
		log.WithError(err).Warn("MongoDB indexes not ensured")
	}
	db, err := config.MongoDatabase(cfg)
	if err != nil {
		log.Fatalf("MongoDB database error: %v", err)
	}
	log.Info("MongoDB client ready")

	// Init PostgreSQL
	if err := config.InitPostgres(cfg); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.EnsurePostgresSchema(); err != nil {
		log.Fatalf("PostgreSQL schema error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init Redis (optional)
	var analyticsCache cache.Cache
	enabled, err := config.InitRedis(cfg)
	switch {
	case err != nil:
		log.WithError(err).Warn("Redis unavailable, analytics cache disabled")
	case enabled:
		analyticsCache = cache.NewRedisCache(config.RedisClient)
		log.Info("Redis connected")
	default:
		log.Info("Redis not configured, analytics cache disabled")
	}

	// Init GCS (optional)
	var uploader storage.Uploader
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSUploader(context.Background(), storage.GCSOptions{
			Bucket:          cfg.GCSBucket,
			CredentialsFile: cfg.GCSCredentialsFile,
			PublicRead:      cfg.GCSPublicRead,
		})
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		uploader = gcs
	} else {
		log.Warn("GCS_BUCKET not set, résumé uploads will fail")
	}

	var wfClient workflow.Client = workflow.Disabled{}
	if cfg.WorkflowBaseURL != "" {
		wfClient = workflow.NewWebhookClient(workflow.Options{
			BaseURL: cfg.WorkflowBaseURL,
			Timeout: cfg.WorkflowTimeout,
			Retries: cfg.WorkflowRetries,
		})
	} else {
		log.Warn("WORKFLOW_BASE_URL not set, workflow commands are disabled")
	}

	m := metrics.New()
	validate := validator.New()

	// Repositories
	hrRepo := mongorepo.NewHRRepo(db)
	formRepo := mongorepo.NewFormRepo(db)
	submissionRepo := mongorepo.NewSubmissionRepo(db)
	applicantRepo := pgrepo.NewApplicantRepo(config.PostgresDB)
	commandRepo := pgrepo.NewWorkflowCommandRepo(config.PostgresDB)

	// Services
	hrSvc := services.NewHRService(hrRepo)
	formSvc := services.NewFormService(formRepo, validate)
	submissionSvc := services.NewSubmissionService(submissionRepo, formRepo, uploader, services.SubmissionOptions{
		Folder: cfg.UploadFolder,
		Strict: cfg.StrictSubmissionFields,
	})
	applicantSvc := services.NewApplicantService(applicantRepo)
	analyticsSvc := services.NewAnalyticsService(applicantRepo, formRepo, submissionRepo, analyticsCache, cfg.AnalyticsCacheTTL, log)
	workflowSvc := services.NewWorkflowService(services.WorkflowDeps{
		Client:     wfClient,
		Commands:   commandRepo,
		Applicants: applicantRepo,
		Analytics:  analyticsSvc,
		Metrics:    m,
		Validate:   validate,
		Log:        log,
	})

	checks := map[string]handlers.Check{
		"mongodb": config.PingMongo,
		"postgres": func(ctx context.Context) error {
			sqlDB, err := config.PostgresDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if config.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return config.RedisClient.Ping(ctx).Err() }
	}

	r := routes.NewRouter(routes.Deps{
		HR:        handlers.NewHRHandler(hrSvc),
		Form:      handlers.NewFormHandler(formSvc),
		Applicant: handlers.NewApplicantHandler(applicantSvc, analyticsSvc),
		Submission: handlers.NewSubmissionHandler(submissionSvc, workflowSvc, m, log, handlers.SubmissionOptions{
			MaxUploadBytes: cfg.MaxUploadBytes,
			NotifyWorkflow: cfg.WorkflowNotifyOnSubmit,
		}),
		Workflow:       handlers.NewWorkflowHandler(workflowSvc),
		Health:         handlers.NewHealthHandler(checks),
		Metrics:        m,
		Log:            log,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := config.MongoClient.Disconnect(ctx); err != nil {
		log.WithError(err).Warn("MongoDB disconnect failed")
	}
	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
}
