package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/realtime"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Maintenance{}))

	return db
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newVehicleRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	vc := NewVehicleController(db, realtime.NewHub())
	router.POST("/vehicles", vc.CreateVehicle)
	return router
}

func TestCreateVehicle_RejectsDuplicateNumberBeforeInsert(t *testing.T) {
	db := setupTestDB(t)
	router := newVehicleRouter(db)

	body := gin.H{
		"vehicle_number": "V001",
		"license_plate":  "ABC-1D23",
		"brand":          "Fiat",
		"model":          "Fiorino",
		"year":           2021,
		"km_current":     48200,
	}

	w := performRequest(t, router, http.MethodPost, "/vehicles", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same business number on a different plate must be rejected.
	body["license_plate"] = "XYZ-9Z99"
	w = performRequest(t, router, http.MethodPost, "/vehicles", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Vehicle{}).Where("vehicle_number = ?", "V001").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
