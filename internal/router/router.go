package router

import (
	"github.com/gin-gonic/gin"

	"getgsa/internal/config"
	"getgsa/internal/handler"
	"getgsa/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	ingestH *handler.IngestHandler,
	analyzeH *handler.AnalyzeHandler,
	sinH *handler.SINHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/ingest", ingestH.Ingest)

	v1.POST("/analyze", analyzeH.Analyze)
	v1.GET("/analyze/:request_id", analyzeH.GetResults)
	v1.GET("/analyze/:request_id/checklist.csv", analyzeH.DownloadChecklist)
	v1.POST("/analyze/:request_id/email", analyzeH.SendEmail)

	v1.GET("/sins/:naics", sinH.Lookup)

	return r
}
