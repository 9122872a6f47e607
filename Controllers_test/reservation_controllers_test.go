package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

// setupTestDBForReservations menyiapkan seluruh skema yang dipakai alur booking
func setupTestDBForReservations(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.Reservation{},
		&models.WaitlistEntry{},
		&models.OperatingHours{},
		&models.Holiday{},
	)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func newReservationService(db *gorm.DB) *services.ReservationService {
	return services.NewReservationService(
		db,
		services.NewTableRegistry(db),
		services.NewQueueSequencer(db),
		services.NewScheduleService(db),
		nil,
	)
}

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	svc := newReservationService(db)
	reservationCtrl := controllers.NewReservationController(db, svc)
	router.POST("/reservations", reservationCtrl.CreateReservation)
	router.GET("/reservations", reservationCtrl.GetAllReservations)
	router.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	router.GET("/queue", reservationCtrl.GetQueue)
	router.POST("/reservations/:reservation_id/assign", reservationCtrl.AssignTable)
	router.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
	router.POST("/reservations/:reservation_id/complete", reservationCtrl.CompleteReservation)
	return router
}

func postJSON(router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateWalkInReservation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)

	db.Create(&models.Table{TableNumber: "A1", Location: models.LocationIndoor, Size: 4})

	router := setupReservationRouter(db)
	w := postJSON(router, "/reservations", map[string]interface{}{
		"name":             "Budi",
		"phone_number":     "0811222333",
		"adults":           2,
		"location":         models.LocationIndoor,
		"reservation_type": models.TypeWalkIn,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Reservation created", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.ReservationSeated, data["status"])
	assert.Equal(t, float64(1), data["queue_number"])
}

func TestCreateWalkInRedirectsToWaitlist(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)

	// Tidak ada meja sama sekali
	router := setupReservationRouter(db)
	w := postJSON(router, "/reservations", map[string]interface{}{
		"name":             "Sari",
		"phone_number":     "0811222334",
		"adults":           3,
		"location":         models.LocationIndoor,
		"reservation_type": models.TypeWalkIn,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No table available, added to waitlist", response["message"])

	var count int64
	db.Model(&models.WaitlistEntry{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateReservationBadInput(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	router := setupReservationRouter(db)

	// Tanpa nama dan telepon -> 400 dari binding
	w := postJSON(router, "/reservations", map[string]interface{}{
		"adults":   2,
		"location": models.LocationIndoor,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rombongan kosong -> 400 dari validasi service
	w = postJSON(router, "/reservations", map[string]interface{}{
		"name":         "Kosong",
		"phone_number": "0800",
		"adults":       0,
		"location":     models.LocationIndoor,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduledConflictReturns409(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)

	db.Create(&models.Table{TableNumber: "A1", Location: models.LocationIndoor, Size: 4})

	router := setupReservationRouter(db)
	payload := map[string]interface{}{
		"name":             "Dina",
		"phone_number":     "0811000001",
		"adults":           2,
		"location":         models.LocationIndoor,
		"reservation_type": models.TypeOnline,
		"is_scheduled":     true,
		"reservation_date": "2026-09-20",
		"reservation_time": "19:00",
	}

	w := postJSON(router, "/reservations", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	payload["phone_number"] = "0811000002"
	w = postJSON(router, "/reservations", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestQueueBoardOrdering(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)

	customer := models.Customer{Name: "X", PhoneNumber: "0811999"}
	db.Create(&customer)
	db.Create(&models.Reservation{CustomerID: customer.ID, Adults: 2, Status: models.ReservationQueued, QueueNumber: 2})
	db.Create(&models.Reservation{CustomerID: customer.ID, Adults: 2, Status: models.ReservationQueued, QueueNumber: 1})
	db.Create(&models.Reservation{CustomerID: customer.ID, Adults: 2, Status: models.ReservationSeated, QueueNumber: 3})

	router := setupReservationRouter(db)
	req, _ := http.NewRequest("GET", "/queue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["queue_number"])
}

func TestCancelLifecycleOverHTTP(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)

	table := models.Table{TableNumber: "A1", Location: models.LocationIndoor, Size: 4}
	db.Create(&table)

	router := setupReservationRouter(db)
	w := postJSON(router, "/reservations", map[string]interface{}{
		"name":             "Eka",
		"phone_number":     "0811333444",
		"adults":           2,
		"location":         models.LocationIndoor,
		"reservation_type": models.TypeWalkIn,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	id := int(data["id"].(float64))

	url := fmt.Sprintf("/reservations/%d/cancel", id)
	w = postJSON(router, url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Meja kembali kosong
	var got models.Table
	db.First(&got, table.ID)
	assert.False(t, got.IsOccupied)

	// Cancel kedua kali -> 409
	w = postJSON(router, url, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignTableOverHTTP(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)

	customer := models.Customer{Name: "Y", PhoneNumber: "0811888"}
	db.Create(&customer)
	reservation := models.Reservation{CustomerID: customer.ID, Adults: 2, Status: models.ReservationQueued, QueueNumber: 1}
	db.Create(&reservation)
	table := models.Table{TableNumber: "A1", Location: models.LocationIndoor, Size: 4}
	db.Create(&table)

	router := setupReservationRouter(db)
	url := "/reservations/" + strconv.Itoa(int(reservation.ID)) + "/assign"
	w := postJSON(router, url, map[string]interface{}{"table_id": table.ID})

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Reservation
	db.First(&got, reservation.ID)
	assert.Equal(t, models.ReservationSeated, got.Status)
}
