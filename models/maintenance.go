package models

import (
	"time"
)

type MaintenanceStatus string

const (
	MaintenanceStatusCompleted MaintenanceStatus = "Concluído"
	MaintenanceStatusScheduled MaintenanceStatus = "Agendado"
)

// DateLayout is the wire and storage format for service/scheduled dates.
// Dates are day-granular, no timezone component.
const DateLayout = "2006-01-02"

// Maintenance is either a completed service record or a scheduled one,
// distinguished by Status/IsScheduled. Completed records carry the
// service_* fields, scheduled records the scheduled_* fields.
type Maintenance struct {
	ID            string            `json:"id" gorm:"primaryKey;size:191"`
	VehicleID     string            `json:"vehicle_id" gorm:"not null;index;size:191"`
	ServiceType   string            `json:"service_type" gorm:"not null;size:100"`
	ServiceDate   *string           `json:"service_date" gorm:"size:10"`
	KmAtService   *int              `json:"km_at_service"`
	Cost          *float64          `json:"cost"`
	Description   *string           `json:"description" gorm:"size:1000"`
	AttachmentURL *string           `json:"attachment_url" gorm:"size:500"`
	ScheduledDate *string           `json:"scheduled_date" gorm:"size:10"`
	ScheduledKm   *int              `json:"scheduled_km"`
	Status        MaintenanceStatus `json:"status" gorm:"not null;index;size:30"`
	IsScheduled   bool              `json:"is_scheduled" gorm:"not null;default:false"`
	CreatedAt     time.Time         `json:"created_at"`

	Vehicle Vehicle `json:"vehicle" gorm:"foreignKey:VehicleID"`
}
