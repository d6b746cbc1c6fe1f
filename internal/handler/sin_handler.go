package handler

import (
	"github.com/gin-gonic/gin"

	"getgsa/internal/service"
)

// SINHandler handles NAICS-to-SIN lookup endpoints.
type SINHandler struct {
	sinService service.SINService
}

// NewSINHandler creates a new SINHandler.
func NewSINHandler(sinService service.SINService) *SINHandler {
	return &SINHandler{sinService: sinService}
}

// Lookup handles GET /api/v1/sins/:naics
// @Summary Look up the SIN mapping for a NAICS code
// @Tags sins
// @Produce json
// @Param naics path string true "6-digit NAICS code"
// @Success 200 {object} Response{data=domain.SINMapping} "SIN mapping"
// @Failure 404 {object} ErrorResponseBody "No mapping for NAICS code"
// @Router /sins/{naics} [get]
func (h *SINHandler) Lookup(c *gin.Context) {
	mapping, err := h.sinService.Lookup(c.Request.Context(), c.Param("naics"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, mapping)
}
