package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/models"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// List returns maintenance records newest-first with their vehicle
// preloaded, optionally filtered by status.
func (r *MaintenanceRepository) List(status models.MaintenanceStatus) ([]models.Maintenance, error) {
	var maintenances []models.Maintenance

	query := r.db.Preload("Vehicle").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&maintenances).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenances: %w", err)
	}

	return maintenances, nil
}

// ListScheduled returns scheduled records with their vehicle preloaded,
// the input of the notification scan.
func (r *MaintenanceRepository) ListScheduled() ([]models.Maintenance, error) {
	var maintenances []models.Maintenance

	err := r.db.Preload("Vehicle").
		Where("status = ?", models.MaintenanceStatusScheduled).
		Find(&maintenances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled maintenances: %w", err)
	}

	return maintenances, nil
}

// ListByVehicle returns a vehicle's full maintenance history newest-first.
func (r *MaintenanceRepository) ListByVehicle(vehicleID string) ([]models.Maintenance, error) {
	var maintenances []models.Maintenance

	err := r.db.Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&maintenances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle maintenances: %w", err)
	}

	return maintenances, nil
}

// CreateScheduled inserts a scheduled maintenance. Vehicle mileage is
// never touched by scheduling.
func (r *MaintenanceRepository) CreateScheduled(maintenance *models.Maintenance) error {
	maintenance.ID = uuid.New().String()
	maintenance.Status = models.MaintenanceStatusScheduled
	maintenance.IsScheduled = true

	if err := r.db.Create(maintenance).Error; err != nil {
		return fmt.Errorf("failed to create scheduled maintenance: %w", err)
	}
	return nil
}

// RegisterCompleted inserts a completed service record and, when a
// mileage was submitted, updates the vehicle's current km in the same
// transaction. Either both writes commit or neither does.
func (r *MaintenanceRepository) RegisterCompleted(maintenance *models.Maintenance) error {
	maintenance.ID = uuid.New().String()
	maintenance.Status = models.MaintenanceStatusCompleted
	maintenance.IsScheduled = false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(maintenance).Error; err != nil {
			return err
		}

		if maintenance.KmAtService != nil {
			err := tx.Model(&models.Vehicle{}).
				Where("id = ?", maintenance.VehicleID).
				Update("km_current", *maintenance.KmAtService).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to register maintenance: %w", err)
	}

	return nil
}
