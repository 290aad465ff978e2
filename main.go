package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/wyllersu/ai-fleet-mate/config"
	"github.com/wyllersu/ai-fleet-mate/database"
	"github.com/wyllersu/ai-fleet-mate/jobs"
	"github.com/wyllersu/ai-fleet-mate/middleware"
	"github.com/wyllersu/ai-fleet-mate/realtime"
	"github.com/wyllersu/ai-fleet-mate/routes"
	"github.com/wyllersu/ai-fleet-mate/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Change feed hub
	hub := realtime.NewHub()

	// Create router
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// Request logging middleware
	router.Use(gin.Logger())

	// Recovery middleware
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, hub)

	// Periodic alert digest
	if cfg.AlertRecipient != "" {
		emailService := services.NewEmailService(cfg)
		alertJob := jobs.NewAlertScanJob(db, emailService, cfg.AlertRecipient, cfg.AlertScanInterval)
		alertJob.Start()
		defer alertJob.Stop()
	}

	// Start server
	log.Printf("Starting FleetMate API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
