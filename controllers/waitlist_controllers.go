package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type WaitlistController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewWaitlistController(db *gorm.DB, service *services.ReservationService) *WaitlistController {
	return &WaitlistController{DB: db, Service: service}
}

// AddToWaitlist -> staf menambahkan tamu langsung ke waitlist
func (wc *WaitlistController) AddToWaitlist(c *gin.Context) {
	var req struct {
		Name              string  `json:"name" binding:"required"`
		PhoneNumber       string  `json:"phone_number" binding:"required"`
		Email             *string `json:"email"`
		Adults            int     `json:"adults"`
		Children          int     `json:"children"`
		ChildSeatRequired bool    `json:"child_seat_required"`
		Location          string  `json:"location" binding:"required"`
		Notes             *string `json:"notes"`
		EstimatedWaitTime *int    `json:"estimated_wait_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Service.AddToWaitlist(services.BookingRequest{
		Name:              req.Name,
		PhoneNumber:       req.PhoneNumber,
		Email:             req.Email,
		Adults:            req.Adults,
		Children:          req.Children,
		ChildSeatRequired: req.ChildSeatRequired,
		Location:          req.Location,
		Notes:             req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.EstimatedWaitTime != nil {
		entry.EstimatedWaitTime = req.EstimatedWaitTime
		if err := wc.DB.Save(entry).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Waitlist entry %d created for customer %d", entry.ID, entry.CustomerID)
	utils.RespondJSON(c, http.StatusCreated, "Added to waitlist", entry)
}

// GetWaitlist -> entry aktif (Waiting, Called) berurut kedatangan
func (wc *WaitlistController) GetWaitlist(c *gin.Context) {
	statuses := []string{models.WaitlistWaiting, models.WaitlistCalled}
	if status := c.Query("status"); status != "" {
		statuses = []string{status}
	}

	var entries []models.WaitlistEntry
	if err := wc.DB.Preload("Customer").Preload("Table").
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist entries", entries)
}

// CallEntry -> Waiting -> Called, tamu diberi tahu meja hampir siap
func (wc *WaitlistController) CallEntry(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("waitlist_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Service.CallWaitlist(uint(entryID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist entry called", entry)
}

// SeatEntry -> mendudukkan entry di meja tertentu
func (wc *WaitlistController) SeatEntry(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("waitlist_id"))
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

	entry, err := wc.Service.SeatWaitlist(uint(entryID), body.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist entry seated", entry)
}

// CancelEntry -> tamu batal menunggu
func (wc *WaitlistController) CancelEntry(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("waitlist_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Service.CancelWaitlist(uint(entryID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist entry cancelled", entry)
}

// VacateEntry -> seating dari waitlist selesai, meja dibebaskan
func (wc *WaitlistController) VacateEntry(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("waitlist_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Service.VacateWaitlistSeat(uint(entryID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table vacated", entry)
}

// UpdateEntry -> staf memperbarui estimasi tunggu / catatan
func (wc *WaitlistController) UpdateEntry(c *gin.Context) {
	entryID := c.Param("waitlist_id")

	var body struct {
		EstimatedWaitTime *int    `json:"estimated_wait_time"`
		Notes             *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var entry models.WaitlistEntry
	if err := wc.DB.First(&entry, entryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.EstimatedWaitTime != nil {
		entry.EstimatedWaitTime = body.EstimatedWaitTime
	}
	if body.Notes != nil {
		entry.Notes = body.Notes
	}
	if err := wc.DB.Save(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist entry updated", entry)
}

// Promote -> langkah promosi on-demand: dudukkan semua entry paling awal
// yang kompatibel dengan meja kosong
func (wc *WaitlistController) Promote(c *gin.Context) {
	promoted, err := wc.Service.Promote()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Waitlist promotion seated %d parties", len(promoted))
	utils.RespondJSON(c, http.StatusOK, "Waitlist promotion complete", gin.H{
		"promoted": promoted,
		"count":    len(promoted),
	})
}

// DeleteEntry -> hapus entry dari waitlist
func (wc *WaitlistController) DeleteEntry(c *gin.Context) {
	entryID := c.Param("waitlist_id")

	var entry models.WaitlistEntry
	if err := wc.DB.First(&entry, entryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := wc.DB.Delete(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist entry removed", gin.H{"id": entry.ID})
}
