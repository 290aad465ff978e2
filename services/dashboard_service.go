package services

import (
	"sort"
	"time"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/repositories"
)

// CostWindowDays is the trailing window for the maintenance cost figure.
const CostWindowDays = 30

type DashboardService struct {
	vehicleRepo     *repositories.VehicleRepository
	maintenanceRepo *repositories.MaintenanceRepository
}

func NewDashboardService(vehicleRepo *repositories.VehicleRepository, maintenanceRepo *repositories.MaintenanceRepository) *DashboardService {
	return &DashboardService{
		vehicleRepo:     vehicleRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

func (s *DashboardService) GetStats() (*models.DashboardStats, error) {
	vehicles, err := s.vehicleRepo.List("")
	if err != nil {
		return nil, err
	}

	maintenances, err := s.maintenanceRepo.List("")
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(vehicles, maintenances, time.Now())
	return &stats, nil
}

// ComputeStats is a pure projection of the current snapshot. Aggregates
// are recomputed in full on every refresh, nothing is maintained
// incrementally.
func ComputeStats(vehicles []models.Vehicle, maintenances []models.Maintenance, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalVehicles:      len(vehicles),
		MaintenancesByType: []models.TypeCount{},
		VehiclesByStatus:   []models.StatusCount{},
	}

	for _, v := range vehicles {
		if v.Status == models.VehicleStatusActive {
			stats.TotalKm += v.KmCurrent
		}
	}

	windowStart := truncateToDay(now).AddDate(0, 0, -CostWindowDays)

	typeGroups := map[string]int{}
	for _, m := range maintenances {
		if m.Status != models.MaintenanceStatusCompleted {
			continue
		}
		if m.ServiceDate == nil {
			continue
		}
		serviceDate, err := time.Parse(models.DateLayout, *m.ServiceDate)
		if err != nil || serviceDate.Before(windowStart) {
			continue
		}

		if m.Cost != nil {
			stats.MaintenanceCost += *m.Cost
		}
		typeGroups[m.ServiceType]++
	}

	types := make([]string, 0, len(typeGroups))
	for serviceType := range typeGroups {
		types = append(types, serviceType)
	}
	sort.Strings(types)
	for _, serviceType := range types {
		stats.MaintenancesByType = append(stats.MaintenancesByType, models.TypeCount{
			Type:  serviceType,
			Count: typeGroups[serviceType],
		})
	}

	statusGroups := map[models.VehicleStatus]int{}
	for _, v := range vehicles {
		statusGroups[v.Status]++
	}
	for _, status := range []models.VehicleStatus{models.VehicleStatusActive, models.VehicleStatusMaintenance, models.VehicleStatusInactive} {
		count, ok := statusGroups[status]
		if !ok {
			continue
		}
		stats.VehiclesByStatus = append(stats.VehiclesByStatus, models.StatusCount{
			Status: status,
			Count:  count,
			Color:  models.StatusColors[status],
		})
	}

	return stats
}
