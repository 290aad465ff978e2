package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/repositories"
	"github.com/wyllersu/ai-fleet-mate/services"
)

type DashboardController struct {
	dashboardService *services.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	vehicleRepo := repositories.NewVehicleRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)

	return &DashboardController{
		dashboardService: services.NewDashboardService(vehicleRepo, maintenanceRepo),
	}
}

// GetStats handles GET /api/v1/dashboard
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.dashboardService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
