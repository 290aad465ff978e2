package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/realtime"
	"github.com/wyllersu/ai-fleet-mate/repositories"
	"github.com/wyllersu/ai-fleet-mate/utils"
)

type VehicleController struct {
	vehicleRepo     *repositories.VehicleRepository
	maintenanceRepo *repositories.MaintenanceRepository
	hub             *realtime.Hub
}

func NewVehicleController(db *gorm.DB, hub *realtime.Hub) *VehicleController {
	return &VehicleController{
		vehicleRepo:     repositories.NewVehicleRepository(db),
		maintenanceRepo: repositories.NewMaintenanceRepository(db),
		hub:             hub,
	}
}

type CreateVehicleRequest struct {
	VehicleNumber string               `json:"vehicle_number" binding:"required"`
	LicensePlate  string               `json:"license_plate" binding:"required"`
	Brand         string               `json:"brand" binding:"required"`
	Model         string               `json:"model" binding:"required"`
	Year          int                  `json:"year" binding:"required"`
	KmCurrent     int                  `json:"km_current"`
	Status        models.VehicleStatus `json:"status"`
}

// GetVehicles handles GET /api/v1/vehicles?q=
func (vc *VehicleController) GetVehicles(c *gin.Context) {
	vehicles, err := vc.vehicleRepo.List(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle handles GET /api/v1/vehicles/:id and returns the vehicle
// together with its maintenance history, newest first.
func (vc *VehicleController) GetVehicle(c *gin.Context) {
	vehicle, err := vc.vehicleRepo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	history, err := vc.maintenanceRepo.ListByVehicle(vehicle.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance history"})
		return
	}
	vehicle.Maintenances = history

	c.JSON(http.StatusOK, vehicle)
}

// CreateVehicle handles POST /api/v1/vehicles. The vehicle number is a
// business key: duplicates are rejected before any insert happens.
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.KmCurrent < 0 {
		utils.SendValidationError(c, "Quilometragem não pode ser negativa")
		return
	}
	if !utils.IsValidYear(req.Year) {
		utils.SendValidationError(c, "Ano inválido")
		return
	}

	status := req.Status
	if status == "" {
		status = models.VehicleStatusActive
	}
	if !status.IsValid() {
		utils.SendValidationError(c, "Status inválido")
		return
	}

	exists, err := vc.vehicleRepo.ExistsByNumber(req.VehicleNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check vehicle number"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe um veículo com este número"})
		return
	}

	vehicle := models.Vehicle{
		ID:            uuid.New().String(),
		VehicleNumber: req.VehicleNumber,
		LicensePlate:  req.LicensePlate,
		Brand:         req.Brand,
		Model:         req.Model,
		Year:          req.Year,
		KmCurrent:     req.KmCurrent,
		Status:        status,
	}

	if err := vc.vehicleRepo.Create(&vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	vc.hub.Publish(realtime.Event{Table: "vehicles", Action: realtime.ActionInsert, ID: vehicle.ID})

	c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle handles PUT /api/v1/vehicles/:id, including manual
// status changes. Vehicles are never hard-deleted.
func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	vehicle, err := vc.vehicleRepo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.KmCurrent < 0 {
		utils.SendValidationError(c, "Quilometragem não pode ser negativa")
		return
	}
	if !req.Status.IsValid() {
		utils.SendValidationError(c, "Status inválido")
		return
	}

	if req.VehicleNumber != vehicle.VehicleNumber {
		exists, err := vc.vehicleRepo.ExistsByNumber(req.VehicleNumber)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check vehicle number"})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": "Já existe um veículo com este número"})
			return
		}
	}

	updates := map[string]interface{}{
		"vehicle_number": req.VehicleNumber,
		"license_plate":  req.LicensePlate,
		"brand":          req.Brand,
		"model":          req.Model,
		"year":           req.Year,
		"km_current":     req.KmCurrent,
		"status":         req.Status,
	}

	if err := vc.vehicleRepo.Update(vehicle, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	vc.hub.Publish(realtime.Event{Table: "vehicles", Action: realtime.ActionUpdate, ID: vehicle.ID})

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated successfully"})
}
