package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyllersu/ai-fleet-mate/models"
)

func completedMaintenance(serviceType string, serviceDate time.Time, cost float64) models.Maintenance {
	date := serviceDate.Format(models.DateLayout)
	return models.Maintenance{
		ServiceType: serviceType,
		ServiceDate: &date,
		Cost:        &cost,
		Status:      models.MaintenanceStatusCompleted,
	}
}

func TestComputeStats_CostWindow(t *testing.T) {
	now := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)

	maintenances := []models.Maintenance{
		completedMaintenance("Troca de Óleo", now, 100),
		completedMaintenance("Freios", now.AddDate(0, 0, -30), 250),  // exactly on the boundary
		completedMaintenance("Revisão", now.AddDate(0, 0, -31), 999), // one day too old
	}

	stats := ComputeStats(nil, maintenances, now)

	assert.Equal(t, 350.0, stats.MaintenanceCost)
	require.Len(t, stats.MaintenancesByType, 2)
	assert.Equal(t, models.TypeCount{Type: "Freios", Count: 1}, stats.MaintenancesByType[0])
	assert.Equal(t, models.TypeCount{Type: "Troca de Óleo", Count: 1}, stats.MaintenancesByType[1])
}

func TestComputeStats_IgnoresScheduledAndUndatedRecords(t *testing.T) {
	now := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)
	cost := 500.0
	scheduledKm := 20000

	maintenances := []models.Maintenance{
		{
			ServiceType: "Revisão",
			Cost:        &cost,
			ScheduledKm: &scheduledKm,
			Status:      models.MaintenanceStatusScheduled,
			IsScheduled: true,
		},
		{
			// Completed but without a service date: outside the window.
			ServiceType: "Freios",
			Cost:        &cost,
			Status:      models.MaintenanceStatusCompleted,
		},
	}

	stats := ComputeStats(nil, maintenances, now)

	assert.Equal(t, 0.0, stats.MaintenanceCost)
	assert.Empty(t, stats.MaintenancesByType)
}

func TestComputeStats_KmSumsActiveVehiclesOnly(t *testing.T) {
	now := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)

	vehicles := []models.Vehicle{
		{VehicleNumber: "V001", KmCurrent: 10000, Status: models.VehicleStatusActive},
		{VehicleNumber: "V002", KmCurrent: 20000, Status: models.VehicleStatusActive},
		{VehicleNumber: "V003", KmCurrent: 99999, Status: models.VehicleStatusMaintenance},
		{VehicleNumber: "V004", KmCurrent: 55555, Status: models.VehicleStatusInactive},
	}

	stats := ComputeStats(vehicles, nil, now)

	assert.Equal(t, 4, stats.TotalVehicles)
	assert.Equal(t, 30000, stats.TotalKm)
}

func TestComputeStats_GroupsVehiclesByStatus(t *testing.T) {
	now := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)

	vehicles := []models.Vehicle{
		{Status: models.VehicleStatusActive},
		{Status: models.VehicleStatusActive},
		{Status: models.VehicleStatusInactive},
	}

	stats := ComputeStats(vehicles, nil, now)

	require.Len(t, stats.VehiclesByStatus, 2)
	assert.Equal(t, models.StatusCount{
		Status: models.VehicleStatusActive,
		Count:  2,
		Color:  "#22c55e",
	}, stats.VehiclesByStatus[0])
	assert.Equal(t, models.StatusCount{
		Status: models.VehicleStatusInactive,
		Count:  1,
		Color:  "#ef4444",
	}, stats.VehiclesByStatus[1])
}

func TestComputeStats_EmptySnapshot(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now())

	assert.Equal(t, 0, stats.TotalVehicles)
	assert.Equal(t, 0, stats.TotalKm)
	assert.Equal(t, 0.0, stats.MaintenanceCost)
	assert.Empty(t, stats.MaintenancesByType)
	assert.Empty(t, stats.VehiclesByStatus)
}
