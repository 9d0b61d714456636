package handlers

import (
	"net/http"

	"github.com/carbonx/backend/internal/services/vegetation"
	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles vegetation analysis requests
type AnalysisHandler struct {
	vegetationService *vegetation.VegetationService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(vegetationService *vegetation.VegetationService) *AnalysisHandler {
	return &AnalysisHandler{vegetationService: vegetationService}
}

// Analyze runs an NDVI analysis for a bounding box and optional year range.
// The result is display-only and never enters workflow state.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req vegetation.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.vegetationService.Analyze(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
