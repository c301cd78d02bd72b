package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/config"
	"github.com/studyscope/studyscope-backend/internal/handler"
	"github.com/studyscope/studyscope-backend/internal/logger"
	"github.com/studyscope/studyscope-backend/internal/middleware"
	"github.com/studyscope/studyscope-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Upload    *handler.UploadHandler
	Student   *handler.StudentHandler
	Analytics *handler.AnalyticsHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	handlers *Handlers,
	uploadLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(logger.GinMiddleware(log, response.ContextKeyRequestID))

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.Health.Health)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	api := router.Group("/api/v1")
	api.Use(middleware.CacheControl("no-store"))
	{
		// ─── Uploads ───────────────────────────────────────────────────
		api.POST("/uploads", uploadLimiter.Middleware(), handlers.Upload.Ingest)
		api.GET("/uploads", handlers.Upload.ListUploads)
		api.GET("/uploads/:id", handlers.Upload.GetUpload)
		api.GET("/uploads/:id/file", handlers.Upload.DownloadUpload)
		api.DELETE("/uploads/:id", handlers.Upload.DeleteUpload)

		// ─── Students ──────────────────────────────────────────────────
		api.GET("/students", handlers.Student.ListStudents)
		api.GET("/students/:id/details", handlers.Student.GetStudentDetails)

		// ─── Analytics ─────────────────────────────────────────────────
		api.GET("/analytics/specializations", handlers.Analytics.GetSpecializationAnalytics)

		// ─── Dashboard ─────────────────────────────────────────────────
		api.GET("/dashboard", handlers.Dashboard.GetDashboardData)
	}

	return router
}
