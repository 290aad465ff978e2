package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wyllersu/ai-fleet-mate/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Maintenance{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Maintenance list is served newest-first, filtered by status
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_maintenances_status_created ON maintenances(status, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for maintenances: %v\n", err)
	}

	// Vehicle history view fetches per-vehicle records newest-first
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_maintenances_vehicle_created ON maintenances(vehicle_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for maintenances vehicle: %v\n", err)
	}

	// Vehicle search matches number, plate, brand and model
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_vehicles_license_plate ON vehicles(license_plate)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for vehicles plate: %v\n", err)
	}

	return nil
}

// SeedData populates the database with a small sample fleet for
// development/testing.
func SeedData(db *gorm.DB) error {
	var vehicleCount int64
	db.Model(&models.Vehicle{}).Count(&vehicleCount)

	if vehicleCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testVehicles := []models.Vehicle{
		{
			ID:            uuid.New().String(),
			VehicleNumber: "V001",
			LicensePlate:  "ABC-1D23",
			Brand:         "Volkswagen",
			Model:         "Saveiro",
			Year:          2021,
			KmCurrent:     48200,
			Status:        models.VehicleStatusActive,
		},
		{
			ID:            uuid.New().String(),
			VehicleNumber: "V002",
			LicensePlate:  "DEF-4G56",
			Brand:         "Fiat",
			Model:         "Fiorino",
			Year:          2019,
			KmCurrent:     91350,
			Status:        models.VehicleStatusMaintenance,
		},
		{
			ID:            uuid.New().String(),
			VehicleNumber: "V003",
			LicensePlate:  "GHI-7J89",
			Brand:         "Mercedes-Benz",
			Model:         "Sprinter",
			Year:          2022,
			KmCurrent:     27600,
			Status:        models.VehicleStatusActive,
		},
	}

	for _, vehicle := range testVehicles {
		if err := db.Create(&vehicle).Error; err != nil {
			fmt.Printf("Warning: Could not create test vehicle %s: %v\n", vehicle.VehicleNumber, err)
		}
	}

	fmt.Println("Database seeded with test fleet")
	return nil
}
