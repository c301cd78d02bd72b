package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/analytics"
	"github.com/studyscope/studyscope-backend/internal/config"
	"github.com/studyscope/studyscope-backend/internal/database"
	"github.com/studyscope/studyscope-backend/internal/handler"
	"github.com/studyscope/studyscope-backend/internal/logger"
	"github.com/studyscope/studyscope-backend/internal/middleware"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/repository"
	"github.com/studyscope/studyscope-backend/internal/router"
	"github.com/studyscope/studyscope-backend/internal/service"
	"github.com/studyscope/studyscope-backend/internal/storage"
	"github.com/studyscope/studyscope-backend/internal/validator"
	"github.com/studyscope/studyscope-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("storage", cfg.StorageDriver).
		Float64("course_max_marks", cfg.CourseMaxMarks).
		Str("gender_match", cfg.GenderMatchMode).
		Msg("Starting StudyScope Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Open Spreadsheet Archive ──────────────────────────────────────
	archive, err := storage.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open spreadsheet storage")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	uploadRepo := repository.NewUploadRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	opts := analytics.Options{CourseMaxMarks: cfg.CourseMaxMarks}
	purgeQueue := worker.NewPurgeQueue(rdb)

	ingestService := service.NewIngestService(uploadRepo, archive, purgeQueue, cfg.MaxUploadBytes, log)
	uploadService := service.NewUploadService(uploadRepo, archive, purgeQueue, log)
	studentService := service.NewStudentService(studentRepo, opts)
	analyticsService := service.NewAnalyticsService(uploadRepo, studentRepo, opts, model.ParseGenderMatchMode(cfg.GenderMatchMode))
	dashboardService := service.NewDashboardService(dashboardRepo, uploadRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Upload:    handler.NewUploadHandler(ingestService, uploadService, cfg.MaxUploadBytes),
		Student:   handler.NewStudentHandler(studentService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": database.PostgresCheck(pool),
			"redis":    database.RedisCheck(rdb),
		}),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	purgeWorker := worker.NewPurgeWorker(rdb, archive, log)
	go purgeWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	uploadLimiter := middleware.NewRateLimiter(middleware.NewRedisCounter(rdb), cfg.UploadRateLimit, cfg.UploadRateWindow, log)
	r := router.SetupRouter(handlers, uploadLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the purge worker and wait for its queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
