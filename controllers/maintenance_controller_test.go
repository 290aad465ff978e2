package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/realtime"
)

func strPtr(s string) *string     { return &s }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCompletedMaintenanceRequest_Validate(t *testing.T) {
	now := time.Date(2026, 4, 20, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       CompletedMaintenanceRequest
		wantField string
	}{
		{
			"valid full record",
			CompletedMaintenanceRequest{
				VehicleID:     "v-1",
				ServiceType:   "Troca de Óleo",
				ServiceDate:   strPtr("2026-04-19"),
				KmAtService:   intPtr(50000),
				Cost:          floatPtr(350.50),
				AttachmentURL: strPtr("https://example.com/nota.pdf"),
			},
			"",
		},
		{
			"service date today is allowed",
			CompletedMaintenanceRequest{VehicleID: "v-1", ServiceType: "Freios", ServiceDate: strPtr("2026-04-20")},
			"",
		},
		{
			"service date in the future",
			CompletedMaintenanceRequest{VehicleID: "v-1", ServiceType: "Freios", ServiceDate: strPtr("2026-04-21")},
			"service_date",
		},
		{
			"malformed service date",
			CompletedMaintenanceRequest{VehicleID: "v-1", ServiceType: "Freios", ServiceDate: strPtr("20/04/2026")},
			"service_date",
		},
		{
			"negative mileage",
			CompletedMaintenanceRequest{VehicleID: "v-1", ServiceType: "Freios", KmAtService: intPtr(-1)},
			"km_at_service",
		},
		{
			"negative cost",
			CompletedMaintenanceRequest{VehicleID: "v-1", ServiceType: "Freios", Cost: floatPtr(-0.01)},
			"cost",
		},
		{
			"invalid attachment link",
			CompletedMaintenanceRequest{VehicleID: "v-1", ServiceType: "Freios", AttachmentURL: strPtr("not-a-url")},
			"attachment_url",
		},
		{
			"empty service type",
			CompletedMaintenanceRequest{VehicleID: "v-1"},
			"service_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate(now)

			if tt.wantField == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestScheduledMaintenanceRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       ScheduledMaintenanceRequest
		wantField string
	}{
		{
			"date only",
			ScheduledMaintenanceRequest{VehicleID: "v-1", ServiceType: "Revisão", ScheduledDate: strPtr("2026-06-01")},
			"",
		},
		{
			"mileage only",
			ScheduledMaintenanceRequest{VehicleID: "v-1", ServiceType: "Revisão", ScheduledKm: intPtr(60000)},
			"",
		},
		{
			"neither date nor mileage",
			ScheduledMaintenanceRequest{VehicleID: "v-1", ServiceType: "Revisão"},
			"scheduled_date",
		},
		{
			"negative scheduled mileage",
			ScheduledMaintenanceRequest{VehicleID: "v-1", ServiceType: "Revisão", ScheduledKm: intPtr(-5)},
			"scheduled_km",
		},
		{
			"malformed scheduled date",
			ScheduledMaintenanceRequest{VehicleID: "v-1", ServiceType: "Revisão", ScheduledDate: strPtr("01-06-2026")},
			"scheduled_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()

			if tt.wantField == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func newMaintenanceRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mc := NewMaintenanceController(db, realtime.NewHub())
	router.POST("/maintenances/completed", mc.CreateCompleted)
	router.POST("/maintenances/scheduled", mc.CreateScheduled)
	return router
}

func createTestVehicle(t *testing.T, db *gorm.DB, km int) models.Vehicle {
	t.Helper()

	vehicle := models.Vehicle{
		ID:            "v-1",
		VehicleNumber: "V001",
		LicensePlate:  "ABC-1D23",
		Brand:         "Fiat",
		Model:         "Fiorino",
		Year:          2021,
		KmCurrent:     km,
		Status:        models.VehicleStatusActive,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func vehicleKm(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()

	var vehicle models.Vehicle
	require.NoError(t, db.First(&vehicle, "id = ?", id).Error)
	return vehicle.KmCurrent
}

func TestCreateCompleted_RetroactiveMileageGate(t *testing.T) {
	db := setupTestDB(t)
	router := newMaintenanceRouter(db)
	vehicle := createTestVehicle(t, db, 48200)

	body := gin.H{
		"vehicle_id":    vehicle.ID,
		"service_type":  "Troca de Óleo",
		"km_at_service": 40000,
	}

	// Below the stored mileage: nothing may persist until confirmed.
	w := performRequest(t, router, http.MethodPost, "/maintenances/completed", body)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["requires_confirmation"])
	assert.Equal(t, float64(48200), resp["current_km"])
	assert.Equal(t, float64(40000), resp["submitted_km"])

	var count int64
	require.NoError(t, db.Model(&models.Maintenance{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 48200, vehicleKm(t, db, vehicle.ID))

	// Confirming persists exactly once.
	body["confirm_retroactive"] = true
	w = performRequest(t, router, http.MethodPost, "/maintenances/completed", body)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.Model(&models.Maintenance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 40000, vehicleKm(t, db, vehicle.ID))
}

func TestCreateCompleted_ZeroMileageLeavesVehicleKmUntouched(t *testing.T) {
	db := setupTestDB(t)
	router := newMaintenanceRouter(db)
	vehicle := createTestVehicle(t, db, 48200)

	body := gin.H{
		"vehicle_id":    vehicle.ID,
		"service_type":  "Troca de Óleo",
		"km_at_service": 0,
	}

	// Zero means the mileage field was left untouched: the record is
	// created without one and no confirmation is demanded.
	w := performRequest(t, router, http.MethodPost, "/maintenances/completed", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var maintenance models.Maintenance
	require.NoError(t, db.First(&maintenance).Error)
	assert.Nil(t, maintenance.KmAtService)
	assert.Equal(t, 48200, vehicleKm(t, db, vehicle.ID))
}

func TestCreateCompleted_BumpsVehicleKmWithRecord(t *testing.T) {
	db := setupTestDB(t)
	router := newMaintenanceRouter(db)
	vehicle := createTestVehicle(t, db, 48200)

	body := gin.H{
		"vehicle_id":    vehicle.ID,
		"service_type":  "Revisão",
		"km_at_service": 50000,
		"cost":          350.50,
	}

	w := performRequest(t, router, http.MethodPost, "/maintenances/completed", body)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 50000, vehicleKm(t, db, vehicle.ID))

	var count int64
	require.NoError(t, db.Model(&models.Maintenance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateScheduled_ZeroKmDoesNotCountAsTarget(t *testing.T) {
	db := setupTestDB(t)
	router := newMaintenanceRouter(db)
	vehicle := createTestVehicle(t, db, 48200)

	body := gin.H{
		"vehicle_id":   vehicle.ID,
		"service_type": "Revisão",
		"scheduled_km": 0,
	}

	w := performRequest(t, router, http.MethodPost, "/maintenances/scheduled", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Maintenance{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
