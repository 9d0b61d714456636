package handlers

import (
	"net/http"

	"github.com/carbonx/backend/internal/services/registry"
	"github.com/carbonx/backend/internal/services/workflow"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company registration and profile requests
type CompanyHandler struct {
	registryService *registry.RegistryService
	workflowService *workflow.WorkflowService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(registryService *registry.RegistryService, workflowService *workflow.WorkflowService) *CompanyHandler {
	return &CompanyHandler{
		registryService: registryService,
		workflowService: workflowService,
	}
}

// Register creates a new pending company record
func (h *CompanyHandler) Register(c *gin.Context) {
	var input registry.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.registryService.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// List returns all company records
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.registryService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// Get returns a company by id
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	company, err := h.registryService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// GetByWallet returns the company profile for a wallet address, joined with
// its authoritative ledger balance and history. An unregistered wallet is
// not an error; the company field is simply null.
func (h *CompanyHandler) GetByWallet(c *gin.Context) {
	profile, err := h.workflowService.GetCompanyProfile(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
