package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/config"
	"github.com/wyllersu/ai-fleet-mate/controllers"
	"github.com/wyllersu/ai-fleet-mate/middleware"
	"github.com/wyllersu/ai-fleet-mate/realtime"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	vehicleController := controllers.NewVehicleController(db, hub)
	maintenanceController := controllers.NewMaintenanceController(db, hub)
	dashboardController := controllers.NewDashboardController(db)
	notificationController := controllers.NewNotificationController(db)
	chatController := controllers.NewChatController(db, cfg, hub)
	eventsController := controllers.NewEventsController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Vehicle routes
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("/", vehicleController.GetVehicles)
			vehicles.POST("/", vehicleController.CreateVehicle)
			vehicles.GET("/:id", vehicleController.GetVehicle)
			vehicles.PUT("/:id", vehicleController.UpdateVehicle)
		}

		// Maintenance routes
		maintenances := protected.Group("/maintenances")
		{
			maintenances.GET("/", maintenanceController.GetMaintenances)
			maintenances.POST("/completed", maintenanceController.CreateCompleted)
			maintenances.POST("/scheduled", maintenanceController.CreateScheduled)
		}

		// Read-side views
		protected.GET("/dashboard", dashboardController.GetStats)
		protected.GET("/notifications", notificationController.GetNotifications)
	}

	// Change feed. Browsers cannot attach an Authorization header to a
	// websocket handshake, so the stream stays outside the auth group.
	v1.GET("/events", eventsController.Stream)

	// Chat relay: rate-limited instead of authenticated, mirroring the
	// public edge-function contract.
	v1.POST("/chat", middleware.RateLimit(20, 5), chatController.Chat)
}
