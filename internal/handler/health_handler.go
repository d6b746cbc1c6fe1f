package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const serviceName = "getgsa"

// HealthHandler exposes the liveness and readiness probes.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz. Healthy as long as the process serves.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": serviceName, "status": "ok"})
}

// Readiness handles GET /readyz. Not ready until Postgres answers a ping;
// every operation except ingestion validation touches the database.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"service": serviceName,
			"status":  "unavailable",
			"error":   "database not reachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": serviceName, "status": "ok"})
}
