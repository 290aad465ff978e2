package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/models"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// List returns all vehicles newest-first, optionally filtered by a search
// term matched against number, plate, brand and model.
func (r *VehicleRepository) List(search string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle

	query := r.db.Order("created_at DESC")
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(vehicle_number) LIKE ? OR LOWER(license_plate) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?",
			term, term, term, term,
		)
	}

	if err := query.Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *VehicleRepository) FindByID(id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindByPlateOrNumber resolves a vehicle by license plate or vehicle
// number, case-insensitively. Used by the chat mileage command.
func (r *VehicleRepository) FindByPlateOrNumber(key string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.
		Where("LOWER(license_plate) = ? OR LOWER(vehicle_number) = ?", strings.ToLower(key), strings.ToLower(key)).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ExistsByNumber reports whether a vehicle with the given business number
// already exists.
func (r *VehicleRepository) ExistsByNumber(vehicleNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Vehicle{}).Where("vehicle_number = ?", vehicleNumber).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check vehicle number: %w", err)
	}
	return count > 0, nil
}

func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	if err := r.db.Create(vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Update(vehicle *models.Vehicle, updates map[string]interface{}) error {
	if err := r.db.Model(vehicle).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// UpdateKm sets a vehicle's current mileage.
func (r *VehicleRepository) UpdateKm(vehicleID string, km int) error {
	if err := r.db.Model(&models.Vehicle{}).Where("id = ?", vehicleID).Update("km_current", km).Error; err != nil {
		return fmt.Errorf("failed to update vehicle km: %w", err)
	}
	return nil
}
