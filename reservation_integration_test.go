package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/router"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "integration-test-secret")
	utils.InitLogger()
	if err := utils.InitJWT(); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	autoMigrate(db)

	monitor := services.NewStatsMonitor(db)
	return router.SetupRouter(db, monitor), db
}

func doJSON(r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, role string) string {
	email := fmt.Sprintf("%s@resto.test", role)
	w := doJSON(r, "POST", "/register", "", map[string]interface{}{
		"name":     "Integration " + role,
		"email":    email,
		"password": "rahasia123",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/login", "", map[string]interface{}{
		"email":    email,
		"password": "rahasia123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	return data["token"].(string)
}

func TestPing(t *testing.T) {
	r, _ := setupApp(t)
	w := doJSON(r, "GET", "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _ := setupApp(t)
	w := doJSON(r, "GET", "/admin/reservations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Alur lengkap satu shift: setup meja, walk-in pertama duduk, walk-in kedua
// masuk waitlist, tamu pertama selesai, promosi mendudukkan tamu kedua.
func TestFullSeatingFlow(t *testing.T) {
	r, db := setupApp(t)
	token := registerAndLogin(t, r, "staff")

	// Staf menyiapkan satu meja indoor untuk 4 orang
	w := doJSON(r, "POST", "/admin/tables", token, map[string]interface{}{
		"table_number": "I-1",
		"location":     models.LocationIndoor,
		"size":         4,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Walk-in pertama langsung duduk
	w = doJSON(r, "POST", "/reservations", "", map[string]interface{}{
		"name":             "Keluarga Wijaya",
		"phone_number":     "081100000001",
		"adults":           2,
		"children":         1,
		"location":         models.LocationIndoor,
		"reservation_type": models.TypeWalkIn,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	first := response["data"].(map[string]interface{})
	assert.Equal(t, models.ReservationSeated, first["status"])
	assert.Equal(t, float64(1), first["queue_number"])
	firstID := int(first["id"].(float64))

	// Walk-in kedua dialihkan ke waitlist karena meja penuh
	w = doJSON(r, "POST", "/reservations", "", map[string]interface{}{
		"name":             "Pak Hasan",
		"phone_number":     "081100000002",
		"adults":           2,
		"location":         models.LocationIndoor,
		"reservation_type": models.TypeWalkIn,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No table available, added to waitlist", response["message"])

	// Waitlist terlihat oleh staf
	w = doJSON(r, "GET", "/admin/waitlist", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	entries := response["data"].([]interface{})
	assert.Len(t, entries, 1)

	// Tamu pertama selesai makan, mejanya bebas
	w = doJSON(r, "POST", fmt.Sprintf("/admin/reservations/%d/complete", firstID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	db.Where("table_number = ?", "I-1").First(&table)
	assert.False(t, table.IsOccupied)

	// Promosi mendudukkan tamu dari waitlist
	w = doJSON(r, "POST", "/admin/waitlist/promote", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])

	db.Where("table_number = ?", "I-1").First(&table)
	assert.True(t, table.IsOccupied)

	// Papan antrian publik kini kosong (tidak ada yang Queued)
	w = doJSON(r, "GET", "/queue", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response["data"])
}

func TestOperatingHoursRequireAdminRole(t *testing.T) {
	r, _ := setupApp(t)
	staffToken := registerAndLogin(t, r, "staff")

	w := doJSON(r, "PUT", "/admin/operating-hours", staffToken, map[string]interface{}{
		"day_of_week": 0,
		"open_time":   "10:00",
		"close_time":  "22:00",
		"is_open":     true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardStats(t *testing.T) {
	r, db := setupApp(t)
	token := registerAndLogin(t, r, "admin")

	db.Create(&models.Table{TableNumber: "I-1", Location: models.LocationIndoor, Size: 4})
	db.Create(&models.Table{TableNumber: "I-2", Location: models.LocationIndoor, Size: 2, IsOccupied: true})

	w := doJSON(r, "GET", "/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	floor := data["floor"].(map[string]interface{})
	assert.Equal(t, float64(1), floor["tables_free"])
	assert.Equal(t, float64(1), floor["tables_occupied"])
}
