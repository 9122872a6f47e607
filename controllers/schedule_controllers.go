package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type ScheduleController struct {
	DB      *gorm.DB
	Service *services.ScheduleService
}

func NewScheduleController(db *gorm.DB, service *services.ScheduleService) *ScheduleController {
	return &ScheduleController{DB: db, Service: service}
}

// GetOperatingHours -> jam operasional seluruh hari
func (sc *ScheduleController) GetOperatingHours(c *gin.Context) {
	var hours []models.OperatingHours
	if err := sc.DB.Order("day_of_week ASC").Find(&hours).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Operating hours", hours)
}

// UpsertOperatingHours -> set jam buka untuk satu hari (0=Senin .. 6=Minggu)
func (sc *ScheduleController) UpsertOperatingHours(c *gin.Context) {
	var req struct {
		DayOfWeek *int   `json:"day_of_week" binding:"required"`
		OpenTime  string `json:"open_time" binding:"required"`
		CloseTime string `json:"close_time" binding:"required"`
		IsOpen    *bool  `json:"is_open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("day_of_week must be 0-6"))
		return
	}
	if !models.ValidClockTime(req.OpenTime) || !models.ValidClockTime(req.CloseTime) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("times must be HH:MM"))
		return
	}

	var hours models.OperatingHours
	err := sc.DB.Where("day_of_week = ?", *req.DayOfWeek).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hours = models.OperatingHours{DayOfWeek: *req.DayOfWeek}
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hours.OpenTime = req.OpenTime
	hours.CloseTime = req.CloseTime
	hours.IsOpen = true
	if req.IsOpen != nil {
		hours.IsOpen = *req.IsOpen
	}

	if err := sc.DB.Save(&hours).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Operating hours saved", hours)
}

// GetHolidays -> daftar hari libur
func (sc *ScheduleController) GetHolidays(c *gin.Context) {
	var holidays []models.Holiday
	if err := sc.DB.Order("date ASC").Find(&holidays).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Holidays", holidays)
}

// CreateHoliday -> tambah hari libur / jam spesial
func (sc *ScheduleController) CreateHoliday(c *gin.Context) {
	var req struct {
		Name         string  `json:"name" binding:"required"`
		Date         string  `json:"date" binding:"required"` // YYYY-MM-DD
		IsClosed     *bool   `json:"is_closed"`
		SpecialHours *string `json:"special_hours"` // "HH:MM-HH:MM"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	holiday := models.Holiday{
		Name:         req.Name,
		Date:         date,
		IsClosed:     true,
		SpecialHours: req.SpecialHours,
	}
	if req.IsClosed != nil {
		holiday.IsClosed = *req.IsClosed
	}

	if err := sc.DB.Create(&holiday).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Holiday created", holiday)
}

// DeleteHoliday -> hapus hari libur
func (sc *ScheduleController) DeleteHoliday(c *gin.Context) {
	holidayID := c.Param("holiday_id")

	var holiday models.Holiday
	if err := sc.DB.First(&holiday, holidayID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := sc.DB.Delete(&holiday).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Holiday deleted", gin.H{"id": holiday.ID})
}

// IsOpen -> apakah restoran buka sekarang
func (sc *ScheduleController) IsOpen(c *gin.Context) {
	status, err := sc.Service.IsOpenNow()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Open status", status)
}
