package routes

import (
	"net/http"

	"github.com/carbonx/backend/internal/handlers"
	"github.com/carbonx/backend/internal/middleware"
	"github.com/carbonx/backend/internal/services/registry"
	"github.com/carbonx/backend/internal/services/vegetation"
	"github.com/carbonx/backend/internal/services/workflow"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full API surface
func RegisterRoutes(
	router *gin.Engine,
	registryService *registry.RegistryService,
	workflowService *workflow.WorkflowService,
	vegetationService *vegetation.VegetationService,
) {
	companyHandler := handlers.NewCompanyHandler(registryService, workflowService)
	reportHandler := handlers.NewReportHandler(workflowService)
	adminHandler := handlers.NewAdminHandler(workflowService)
	analysisHandler := handlers.NewAnalysisHandler(vegetationService)

	// Registration and analysis both fan out to slow external systems
	writeLimiter := middleware.NewRateLimiter(1, 5)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.WalletAddress())
	{
		companies := api.Group("/companies")
		{
			companies.POST("", writeLimiter.Middleware(), companyHandler.Register)
			companies.GET("", companyHandler.List)
			companies.GET("/:id", companyHandler.Get)
			companies.GET("/wallet/:address", companyHandler.GetByWallet)
		}

		reports := api.Group("/reports")
		{
			reports.POST("", middleware.RequireWallet(), reportHandler.Submit)
			reports.GET("/pending", reportHandler.ListPending)
			reports.GET("/verified", reportHandler.ListVerified)
		}

		tokens := api.Group("/tokens")
		{
			tokens.GET("/balance/:address", reportHandler.GetTokenBalance)
			tokens.GET("/history/:address", reportHandler.GetTransactionHistory)
			tokens.GET("/supply", reportHandler.GetTotalSupply)
		}

		api.POST("/analysis", writeLimiter.Middleware(), analysisHandler.Analyze)
	}

	// Privileged operations require a wallet identity; the workflow gate
	// and ultimately the contract's owner check decide whether it may act
	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireWallet())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.POST("/companies/:id/approve", adminHandler.ApproveCompany)
		admin.POST("/companies/:id/reject", adminHandler.RejectCompany)
		admin.POST("/reports/:index/verify", adminHandler.VerifyReport)
	}
}
