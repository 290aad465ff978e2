package services

import (
	"time"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/repositories"
)

const (
	// Alert thresholds: a scheduled maintenance becomes due when within
	// 7 days or 500 km of its target.
	AlertDateThresholdDays = 7
	AlertKmThreshold       = 500
)

type AlertService struct {
	maintenanceRepo *repositories.MaintenanceRepository
}

func NewAlertService(maintenanceRepo *repositories.MaintenanceRepository) *AlertService {
	return &AlertService{maintenanceRepo: maintenanceRepo}
}

// GetAlerts runs the notification scan over the current snapshot.
func (s *AlertService) GetAlerts() ([]models.Alert, error) {
	scheduled, err := s.maintenanceRepo.ListScheduled()
	if err != nil {
		return nil, err
	}

	return BuildAlerts(scheduled, time.Now()), nil
}

// BuildAlerts scans scheduled maintenances and emits an alert for each
// target within threshold. A single record may emit a date alert and a
// km alert independently. The scan is stateless and idempotent, it is
// simply re-evaluated on every data change.
func BuildAlerts(scheduled []models.Maintenance, now time.Time) []models.Alert {
	alerts := []models.Alert{}
	today := truncateToDay(now)

	for _, m := range scheduled {
		vehicle := m.Vehicle

		if m.ScheduledDate != nil {
			scheduledDate, err := time.Parse(models.DateLayout, *m.ScheduledDate)
			if err == nil {
				daysUntil := int(scheduledDate.Sub(today).Hours() / 24)
				if daysUntil >= 0 && daysUntil <= AlertDateThresholdDays {
					d := daysUntil
					alerts = append(alerts, models.Alert{
						MaintenanceID: m.ID,
						VehicleNumber: vehicle.VehicleNumber,
						LicensePlate:  vehicle.LicensePlate,
						ServiceType:   m.ServiceType,
						Type:          models.AlertTypeDate,
						DaysUntil:     &d,
						ScheduledDate: m.ScheduledDate,
					})
				}
			}
		}

		if m.ScheduledKm != nil && vehicle.KmCurrent > 0 {
			kmUntil := *m.ScheduledKm - vehicle.KmCurrent
			if kmUntil >= 0 && kmUntil <= AlertKmThreshold {
				k := kmUntil
				current := vehicle.KmCurrent
				alerts = append(alerts, models.Alert{
					MaintenanceID: m.ID,
					VehicleNumber: vehicle.VehicleNumber,
					LicensePlate:  vehicle.LicensePlate,
					ServiceType:   m.ServiceType,
					Type:          models.AlertTypeKm,
					KmUntil:       &k,
					ScheduledKm:   m.ScheduledKm,
					CurrentKm:     &current,
				})
			}
		}
	}

	return alerts
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
