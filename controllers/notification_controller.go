package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/repositories"
	"github.com/wyllersu/ai-fleet-mate/services"
)

type NotificationController struct {
	alertService *services.AlertService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	maintenanceRepo := repositories.NewMaintenanceRepository(db)

	return &NotificationController{
		alertService: services.NewAlertService(maintenanceRepo),
	}
}

// GetNotifications handles GET /api/v1/notifications. The scan runs over
// the current snapshot on every call; clients re-request it whenever a
// change event touches vehicles or maintenances.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	alerts, err := nc.alertService.GetAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute notifications"})
		return
	}

	responses := make([]models.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		responses = append(responses, alert.ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}
