package main

import (
	"fmt"
	"log"

	"github.com/carbonx/backend/internal/auth"
	"github.com/carbonx/backend/internal/config"
	"github.com/carbonx/backend/internal/database"
	"github.com/carbonx/backend/internal/database/migrations"
	"github.com/carbonx/backend/internal/routes"
	"github.com/carbonx/backend/internal/services/ledger"
	"github.com/carbonx/backend/internal/services/registry"
	"github.com/carbonx/backend/internal/services/vegetation"
	"github.com/carbonx/backend/internal/services/workflow"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.LoadConfig()

	// Registry store
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Ledger connection
	ledgerService, err := ledger.NewLedgerService(cfg.Chain)
	if err != nil {
		log.Fatalf("Failed to connect to ledger: %v", err)
	}

	// Optional analysis cache
	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	gate := auth.NewGate(cfg.Chain.AdminAddress)
	registryService := registry.NewRegistryService(db)
	workflowService := workflow.NewWorkflowService(gate, registryService, ledgerService)
	vegetationService := vegetation.NewVegetationService(cfg.Vegetation, cache)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Wallet-Address"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(router, registryService, workflowService, vegetationService)

	fmt.Printf("CarbonX API server running on port %s\n", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
