package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"getgsa/internal/service"
)

// AnalyzeHandler handles analysis endpoints.
type AnalyzeHandler struct {
	analysisService service.AnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analysisService service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisService: analysisService}
}

// Analyze handles POST /api/v1/analyze
// @Summary Analyze an ingested request
// @Description Run field extraction, compliance checks, and report generation for a request
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Request to analyze"
// @Success 200 {object} Response{data=service.AnalysisResponse} "Analysis results"
// @Failure 400 {object} ErrorResponseBody "Invalid request or prior ingestion errors"
// @Failure 404 {object} ErrorResponseBody "Request not found"
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req struct {
		RequestID string `json:"request_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request_id is required")
		return
	}
	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "request_id must be a UUID")
		return
	}

	resp, err := h.analysisService.Analyze(c.Request.Context(), requestID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}

// GetResults handles GET /api/v1/analyze/:request_id
// @Summary Get analysis results
// @Description Get stored analysis results, or a pending status for an unprocessed request
// @Tags analyze
// @Produce json
// @Param request_id path string true "Request ID (UUID)"
// @Success 200 {object} Response{data=service.AnalysisResponse} "Analysis results or pending status"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Request not found"
// @Router /analyze/{request_id} [get]
func (h *AnalyzeHandler) GetResults(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "request_id must be a UUID")
		return
	}

	resp, err := h.analysisService.GetResults(c.Request.Context(), requestID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}

// DownloadChecklist handles GET /api/v1/analyze/:request_id/checklist.csv
// @Summary Download the compliance checklist as CSV
// @Tags analyze
// @Produce text/csv
// @Param request_id path string true "Request ID (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} ErrorResponseBody "Request not found"
// @Failure 409 {object} ErrorResponseBody "Analysis not completed"
// @Router /analyze/{request_id}/checklist.csv [get]
func (h *AnalyzeHandler) DownloadChecklist(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "request_id must be a UUID")
		return
	}

	filename, data, err := h.analysisService.ChecklistCSV(c.Request.Context(), requestID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// SendEmail handles POST /api/v1/analyze/:request_id/email
// @Summary Send the client email draft
// @Description Deliver the generated client email; defaults to the extracted POC address
// @Tags analyze
// @Accept json
// @Produce json
// @Param request_id path string true "Request ID (UUID)"
// @Param request body SendEmailRequest false "Optional recipient override"
// @Success 200 {object} Response{data=MessageResponse} "Email sent"
// @Failure 400 {object} ErrorResponseBody "No recipient available"
// @Failure 404 {object} ErrorResponseBody "Request not found"
// @Failure 409 {object} ErrorResponseBody "Analysis not completed"
// @Router /analyze/{request_id}/email [post]
func (h *AnalyzeHandler) SendEmail(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "request_id must be a UUID")
		return
	}

	var req struct {
		ToEmail string `json:"to_email"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be a JSON object")
			return
		}
	}

	if err := h.analysisService.SendClientEmail(c.Request.Context(), requestID, req.ToEmail); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "client email sent"})
}
