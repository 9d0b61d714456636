package handlers

import (
	"net/http"

	"github.com/carbonx/backend/internal/models"
	"github.com/carbonx/backend/internal/services/workflow"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report submission and read requests
type ReportHandler struct {
	workflowService *workflow.WorkflowService
}

// NewReportHandler creates a new report handler
func NewReportHandler(workflowService *workflow.WorkflowService) *ReportHandler {
	return &ReportHandler{workflowService: workflowService}
}

// Submit appends a new report to the ledger's pending collection. Any
// wallet may submit; the signing wallet is the reporter.
func (h *ReportHandler) Submit(c *gin.Context) {
	var sub models.ReportSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txHash, err := h.workflowService.SubmitReport(c.Request.Context(), sub)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction_hash": txHash})
}

// ListPending returns pending reports joined with company names
func (h *ReportHandler) ListPending(c *gin.Context) {
	reports, err := h.workflowService.ListPendingReports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ListVerified returns verified reports joined with company names,
// optionally filtered by the reporter query parameter
func (h *ReportHandler) ListVerified(c *gin.Context) {
	reports, err := h.workflowService.ListVerifiedReports(c.Request.Context(), c.Query("reporter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetTokenBalance returns a wallet's ledger token balance
func (h *ReportHandler) GetTokenBalance(c *gin.Context) {
	balance, err := h.workflowService.GetTokenBalance(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":            c.Param("address"),
		"balance_base_units": balance.String(),
	})
}

// GetTransactionHistory returns a wallet's ledger token history
func (h *ReportHandler) GetTransactionHistory(c *gin.Context) {
	history, err := h.workflowService.GetTransactionHistory(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetTotalSupply returns the total minted token supply
func (h *ReportHandler) GetTotalSupply(c *gin.Context) {
	supply, err := h.workflowService.GetTotalSupply(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_supply_base_units": supply.String()})
}
