package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type ReservationController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB, service *services.ReservationService) *ReservationController {
	return &ReservationController{DB: db, Service: service}
}

// CreateReservation -> entry point booking (walk-in, telepon, online).
// Hasilnya reservasi (Seated/Queued) atau pengalihan ke waitlist.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Name              string  `json:"name" binding:"required"`
		PhoneNumber       string  `json:"phone_number" binding:"required"`
		Email             *string `json:"email"`
		Adults            int     `json:"adults"`
		Children          int     `json:"children"`
		ChildSeatRequired bool    `json:"child_seat_required"`
		Location          string  `json:"location" binding:"required"`
		Notes             *string `json:"notes"`
		ReservationType   string  `json:"reservation_type"`
		IsScheduled       bool    `json:"is_scheduled"`
		ReservationDate   *string `json:"reservation_date"` // YYYY-MM-DD
		ReservationTime   *string `json:"reservation_time"` // HH:MM
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking := services.BookingRequest{
		Name:              req.Name,
		PhoneNumber:       req.PhoneNumber,
		Email:             req.Email,
		Adults:            req.Adults,
		Children:          req.Children,
		ChildSeatRequired: req.ChildSeatRequired,
		Location:          req.Location,
		Notes:             req.Notes,
		ReservationType:   req.ReservationType,
		IsScheduled:       req.IsScheduled,
		ReservationTime:   req.ReservationTime,
	}
	if req.ReservationDate != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.ReservationDate, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		booking.ReservationDate = &date
	}

	result, err := rc.Service.CreateReservation(booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result.Waitlisted != nil {
		utils.InfoLogger.Printf("Booking redirected to waitlist: customer %d, party of %d",
			result.Waitlisted.CustomerID, result.Waitlisted.PartySize())
		utils.RespondJSON(c, http.StatusCreated, "No table available, added to waitlist", gin.H{
			"waitlist_entry": result.Waitlisted,
		})
		return
	}

	utils.InfoLogger.Printf("Reservation %d created (status=%s, queue=%d)",
		result.Reservation.ID, result.Reservation.Status, result.Reservation.QueueNumber)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", result.Reservation)
}

// GetAllReservations -> list reservasi, filter opsional date & status
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Customer").Preload("Table")

	if date := c.Query("date"); date != "" {
		query = query.Where("DATE(created_at) = ? OR DATE(reservation_date) = ?", date, date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("created_at DESC").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail satu reservasi
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id := c.Param("reservation_id")
	var reservation models.Reservation
	if err := rc.DB.Preload("Customer").Preload("Table").First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// GetQueue -> papan antrian: reservasi Queued berurut nomor antrian
func (rc *ReservationController) GetQueue(c *gin.Context) {
	var queue []models.Reservation
	if err := rc.DB.Preload("Customer").
		Where("status = ?", models.ReservationQueued).
		Order("queue_number ASC").
		Find(&queue).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation queue", queue)
}

// AssignTable -> staf mendudukkan reservasi Queued di meja tertentu
func (rc *ReservationController) AssignTable(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.AssignTable(uint(reservationID), body.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table assigned", reservation)
}

// CompleteReservation -> Seated -> Completed, meja dibebaskan
func (rc *ReservationController) CompleteReservation(c *gin.Context) {
	rc.transition(c, rc.Service.Complete, "Reservation completed")
}

// CancelReservation -> Queued/Seated -> Cancelled, meja dibebaskan
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	rc.transition(c, rc.Service.Cancel, "Reservation cancelled")
}

// MarkNoShow -> Queued -> No-show
func (rc *ReservationController) MarkNoShow(c *gin.Context) {
	rc.transition(c, rc.Service.MarkNoShow, "Reservation marked as no-show")
}

func (rc *ReservationController) transition(c *gin.Context, fn func(uint) (*models.Reservation, error), message string) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := fn(uint(reservationID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, reservation)
}
