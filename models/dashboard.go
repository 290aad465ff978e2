package models

// DashboardStats is the read-side aggregation shown on the dashboard,
// recomputed in full from the current snapshot on every refresh.
type DashboardStats struct {
	TotalVehicles      int           `json:"total_vehicles"`
	TotalKm            int           `json:"total_km"`
	MaintenanceCost    float64       `json:"maintenance_cost"`
	MaintenancesByType []TypeCount   `json:"maintenances_by_type"`
	VehiclesByStatus   []StatusCount `json:"vehicles_by_status"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Status VehicleStatus `json:"status"`
	Count  int           `json:"count"`
	Color  string        `json:"color"`
}
