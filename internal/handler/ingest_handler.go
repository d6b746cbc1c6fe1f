package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"getgsa/internal/domain"
	"getgsa/internal/service"
)

// IngestHandler handles document ingestion endpoints.
type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// Ingest handles POST /api/v1/ingest
// @Summary Ingest vendor documents
// @Description Redact PII from submitted documents and store them under a new request ID
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body IngestRequest true "Documents to ingest"
// @Success 201 {object} Response{data=service.IngestResult} "Documents ingested"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 413 {object} ErrorResponseBody "Document too large"
// @Router /ingest [post]
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be a JSON object with a documents array")
		return
	}

	result, err := h.ingestService.Ingest(c.Request.Context(), req.Documents)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}
