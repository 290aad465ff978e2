package models

import (
	"time"
)

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "Ativo"
	VehicleStatusMaintenance VehicleStatus = "Em Manutenção"
	VehicleStatusInactive    VehicleStatus = "Inativo"
)

// StatusColors maps vehicle statuses to the chart colors used by clients.
var StatusColors = map[VehicleStatus]string{
	VehicleStatusActive:      "#22c55e",
	VehicleStatusMaintenance: "#f59e0b",
	VehicleStatusInactive:    "#ef4444",
}

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusActive, VehicleStatusMaintenance, VehicleStatusInactive:
		return true
	}
	return false
}

type Vehicle struct {
	ID            string        `json:"id" gorm:"primaryKey;size:191"`
	VehicleNumber string        `json:"vehicle_number" gorm:"not null;uniqueIndex;size:50"`
	LicensePlate  string        `json:"license_plate" gorm:"not null;size:20"`
	Brand         string        `json:"brand" gorm:"not null;size:100"`
	Model         string        `json:"model" gorm:"not null;size:100"`
	Year          int           `json:"year" gorm:"not null"`
	KmCurrent     int           `json:"km_current" gorm:"not null;default:0"`
	Status        VehicleStatus `json:"status" gorm:"not null;size:30;default:'Ativo'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Maintenances []Maintenance `json:"maintenances,omitempty" gorm:"foreignKey:VehicleID"`
}
