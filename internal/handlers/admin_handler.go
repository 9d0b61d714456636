package handlers

import (
	"net/http"
	"strconv"

	"github.com/carbonx/backend/internal/services/workflow"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles the gated verification operations
type AdminHandler struct {
	workflowService *workflow.WorkflowService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(workflowService *workflow.WorkflowService) *AdminHandler {
	return &AdminHandler{workflowService: workflowService}
}

// ApproveCompany moves a pending company to approved
func (h *AdminHandler) ApproveCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	if err := h.workflowService.ApproveCompany(id, c.GetString("wallet_address")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectCompany moves a pending company to rejected with a reason
func (h *AdminHandler) RejectCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workflowService.RejectCompany(id, c.GetString("wallet_address"), input.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// VerifyReport verifies the pending report at the given index, minting the
// requested whole-token reward to its reporter
func (h *AdminHandler) VerifyReport(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report index"})
		return
	}

	var input struct {
		TokenAmount int64 `json:"token_amount"`
		// PendingCount, when supplied, is the length of the pending
		// snapshot the caller read the index from; a mismatch means the
		// collection shifted and the index may target a different report
		PendingCount *int `json:"pending_count,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.PendingCount != nil {
		current, err := h.workflowService.PendingReportCount(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if current != *input.PendingCount {
			c.JSON(http.StatusConflict, gin.H{
				"error": "pending reports changed since they were fetched; refresh and retry",
			})
			return
		}
	}

	txHash, err := h.workflowService.VerifyReport(c.Request.Context(), index, input.TokenAmount, c.GetString("wallet_address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_hash": txHash})
}

// Dashboard returns the operator view: companies by status plus both report
// collections, reconciled
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.workflowService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
