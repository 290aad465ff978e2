package models

import (
	"fmt"
)

type AlertType string

const (
	AlertTypeDate AlertType = "date"
	AlertTypeKm   AlertType = "km"
)

// Alert is a due-maintenance notification. Alerts are recomputed from the
// current snapshot on every evaluation, nothing is persisted.
type Alert struct {
	MaintenanceID string    `json:"id"`
	VehicleNumber string    `json:"vehicle_number"`
	LicensePlate  string    `json:"license_plate"`
	ServiceType   string    `json:"service_type"`
	Type          AlertType `json:"type"`
	DaysUntil     *int      `json:"days_until,omitempty"`
	KmUntil       *int      `json:"km_until,omitempty"`
	ScheduledDate *string   `json:"scheduled_date,omitempty"`
	ScheduledKm   *int      `json:"scheduled_km,omitempty"`
	CurrentKm     *int      `json:"current_km,omitempty"`
}

// Message returns the warning line shown to users, in the same wording
// the notification panel renders.
func (a *Alert) Message() string {
	switch a.Type {
	case AlertTypeDate:
		if a.DaysUntil == nil {
			return ""
		}
		if *a.DaysUntil == 0 {
			return "⚠️ Vence hoje!"
		}
		if *a.DaysUntil == 1 {
			return "⚠️ Vence em 1 dia"
		}
		return fmt.Sprintf("⚠️ Vence em %d dias", *a.DaysUntil)
	case AlertTypeKm:
		if a.KmUntil == nil || a.CurrentKm == nil || a.ScheduledKm == nil {
			return ""
		}
		return fmt.Sprintf("⚠️ Faltam %d km (%d / %d km)", *a.KmUntil, *a.CurrentKm, *a.ScheduledKm)
	}
	return ""
}

// AlertResponse is the API shape for a single notification.
type AlertResponse struct {
	Alert
	Message string `json:"message"`
}

func (a Alert) ToResponse() AlertResponse {
	return AlertResponse{Alert: a, Message: a.Message()}
}
