package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/realtime"
	"github.com/wyllersu/ai-fleet-mate/repositories"
	"github.com/wyllersu/ai-fleet-mate/utils"
)

type MaintenanceController struct {
	vehicleRepo     *repositories.VehicleRepository
	maintenanceRepo *repositories.MaintenanceRepository
	hub             *realtime.Hub
}

func NewMaintenanceController(db *gorm.DB, hub *realtime.Hub) *MaintenanceController {
	return &MaintenanceController{
		vehicleRepo:     repositories.NewVehicleRepository(db),
		maintenanceRepo: repositories.NewMaintenanceRepository(db),
		hub:             hub,
	}
}

type CompletedMaintenanceRequest struct {
	VehicleID     string   `json:"vehicle_id" binding:"required"`
	ServiceType   string   `json:"service_type" binding:"required"`
	ServiceDate   *string  `json:"service_date"`
	KmAtService   *int     `json:"km_at_service"`
	Cost          *float64 `json:"cost"`
	Description   *string  `json:"description"`
	AttachmentURL *string  `json:"attachment_url"`

	// Set by the client after the retroactive-mileage warning was
	// acknowledged. Without it a mileage below the vehicle's current km
	// is answered with a confirmation-required response.
	ConfirmRetroactive bool `json:"confirm_retroactive"`
}

// Validate checks the completed-service fields. Field names map to the
// form inputs so clients can surface errors inline.
func (r *CompletedMaintenanceRequest) Validate(now time.Time) map[string]string {
	errors := map[string]string{}

	if r.ServiceType == "" {
		errors["service_type"] = "Tipo de serviço é obrigatório"
	}
	if r.KmAtService != nil && *r.KmAtService < 0 {
		errors["km_at_service"] = "Quilometragem não pode ser negativa"
	}
	if r.Cost != nil && *r.Cost < 0 {
		errors["cost"] = "Custo não pode ser negativo"
	}
	if r.ServiceDate != nil {
		serviceDate, err := time.Parse(models.DateLayout, *r.ServiceDate)
		if err != nil {
			errors["service_date"] = "Data inválida"
		} else if serviceDate.After(truncateToDay(now)) {
			errors["service_date"] = "Data não pode ser no futuro"
		}
	}
	if r.AttachmentURL != nil && !utils.IsValidURL(*r.AttachmentURL) {
		errors["attachment_url"] = "URL inválida"
	}

	return errors
}

type ScheduledMaintenanceRequest struct {
	VehicleID     string  `json:"vehicle_id" binding:"required"`
	ServiceType   string  `json:"service_type" binding:"required"`
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledKm   *int    `json:"scheduled_km"`
	Description   *string `json:"description"`
}

// Validate checks the scheduling fields. At least one of date or mileage
// must be present for an alert to ever fire.
func (r *ScheduledMaintenanceRequest) Validate() map[string]string {
	errors := map[string]string{}

	if r.ServiceType == "" {
		errors["service_type"] = "Tipo de serviço é obrigatório"
	}
	if r.ScheduledKm != nil && *r.ScheduledKm < 0 {
		errors["scheduled_km"] = "Quilometragem não pode ser negativa"
	}
	if r.ScheduledDate != nil {
		if _, err := time.Parse(models.DateLayout, *r.ScheduledDate); err != nil {
			errors["scheduled_date"] = "Data inválida"
		}
	}
	if r.ScheduledDate == nil && r.ScheduledKm == nil {
		errors["scheduled_date"] = "Defina pelo menos uma data ou quilometragem prevista"
	}

	return errors
}

// GetMaintenances handles GET /api/v1/maintenances?status=
func (mc *MaintenanceController) GetMaintenances(c *gin.Context) {
	status := models.MaintenanceStatus(c.Query("status"))

	maintenances, err := mc.maintenanceRepo.List(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenances"})
		return
	}

	c.JSON(http.StatusOK, maintenances)
}

// CreateCompleted handles POST /api/v1/maintenances/completed. The
// insert and the vehicle mileage bump commit in one transaction, so a
// partial failure can never leave mileage out of sync with the newest
// service record.
func (mc *MaintenanceController) CreateCompleted(c *gin.Context) {
	var req CompletedMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Forms send 0 for untouched numeric inputs; treat it as absent so
	// a zero never overwrites the vehicle's stored mileage.
	if req.KmAtService != nil && *req.KmAtService == 0 {
		req.KmAtService = nil
	}
	if req.Cost != nil && *req.Cost == 0 {
		req.Cost = nil
	}

	if fieldErrors := req.Validate(time.Now()); len(fieldErrors) > 0 {
		utils.SendFieldErrors(c, fieldErrors)
		return
	}

	vehicle, err := mc.vehicleRepo.FindByID(req.VehicleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	// A mileage below the stored one usually means a typo. Gate the
	// write behind an explicit confirmation instead of rejecting it.
	if req.KmAtService != nil && *req.KmAtService < vehicle.KmCurrent && !req.ConfirmRetroactive {
		c.JSON(http.StatusConflict, gin.H{
			"error":                 "Quilometragem informada é menor que a atual do veículo",
			"requires_confirmation": true,
			"current_km":            vehicle.KmCurrent,
			"submitted_km":          *req.KmAtService,
		})
		return
	}

	maintenance := models.Maintenance{
		VehicleID:     vehicle.ID,
		ServiceType:   req.ServiceType,
		ServiceDate:   req.ServiceDate,
		KmAtService:   req.KmAtService,
		Cost:          req.Cost,
		Description:   req.Description,
		AttachmentURL: req.AttachmentURL,
	}

	if err := mc.maintenanceRepo.RegisterCompleted(&maintenance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register maintenance"})
		return
	}

	mc.hub.Publish(realtime.Event{Table: "maintenances", Action: realtime.ActionInsert, ID: maintenance.ID})
	if maintenance.KmAtService != nil {
		mc.hub.Publish(realtime.Event{Table: "vehicles", Action: realtime.ActionUpdate, ID: vehicle.ID})
	}

	c.JSON(http.StatusCreated, maintenance)
}

// CreateScheduled handles POST /api/v1/maintenances/scheduled. Scheduling
// never touches vehicle mileage.
func (mc *MaintenanceController) CreateScheduled(c *gin.Context) {
	var req ScheduledMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ScheduledKm != nil && *req.ScheduledKm == 0 {
		req.ScheduledKm = nil
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		utils.SendFieldErrors(c, fieldErrors)
		return
	}

	vehicle, err := mc.vehicleRepo.FindByID(req.VehicleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	maintenance := models.Maintenance{
		VehicleID:     vehicle.ID,
		ServiceType:   req.ServiceType,
		ScheduledDate: req.ScheduledDate,
		ScheduledKm:   req.ScheduledKm,
		Description:   req.Description,
	}

	if err := mc.maintenanceRepo.CreateScheduled(&maintenance); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule maintenance"})
		return
	}

	mc.hub.Publish(realtime.Event{Table: "maintenances", Action: realtime.ActionInsert, ID: maintenance.ID})

	c.JSON(http.StatusCreated, maintenance)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
