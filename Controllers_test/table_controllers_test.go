package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

// setupTestDBForTables menggunakan SQLite in-memory khusus untuk TableController
func setupTestDBForTables(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PATCH("/tables/:table_id/occupancy", tableCtrl.UpdateOccupancy)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

func TestGetAllTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	// Seed data: buat dua meja
	db.Create(&models.Table{TableNumber: "A1", Location: models.LocationIndoor, Size: 4})
	db.Create(&models.Table{TableNumber: "B1", Location: models.LocationOutdoor, Size: 2, IsOccupied: true})

	router := setupTableRouter(db)
	req, err := http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestGetAllTablesFreeFilter(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{TableNumber: "A1", Location: models.LocationIndoor, Size: 4})
	db.Create(&models.Table{TableNumber: "B1", Location: models.LocationIndoor, Size: 2, IsOccupied: true})

	router := setupTableRouter(db)
	req, _ := http.NewRequest("GET", "/tables?free=true", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	table := data[0].(map[string]interface{})
	assert.Equal(t, "A1", table["table_number"])
}

func TestCreateTableValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	// Lokasi tidak dikenal harus ditolak
	payload := map[string]interface{}{"table_number": "C1", "location": "Rooftop", "size": 4}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/tables", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Lokasi valid diterima
	payload["location"] = models.LocationIndoor
	payloadBytes, _ = json.Marshal(payload)
	req, _ = http.NewRequest("POST", "/tables", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateOccupancyOverride(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{TableNumber: "D1", Location: models.LocationIndoor, Size: 4}
	db.Create(&table)

	router := setupTableRouter(db)

	payload := map[string]interface{}{"is_occupied": true}
	payloadBytes, _ := json.Marshal(payload)
	url := "/tables/" + strconv.Itoa(int(table.ID)) + "/occupancy"
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Table
	db.First(&got, table.ID)
	assert.True(t, got.IsOccupied)
}

func TestDeleteOccupiedTableConflicts(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{TableNumber: "E1", Location: models.LocationIndoor, Size: 4, IsOccupied: true}
	db.Create(&table)

	router := setupTableRouter(db)
	req, _ := http.NewRequest("DELETE", "/tables/"+strconv.Itoa(int(table.ID)), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
