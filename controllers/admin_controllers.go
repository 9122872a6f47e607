package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/notifier"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB      *gorm.DB
	Monitor *services.StatsMonitor
}

func NewAdminController(db *gorm.DB, monitor *services.StatsMonitor) *AdminController {
	return &AdminController{DB: db, Monitor: monitor}
}

// GetDashboardStats mengambil statistik untuk dashboard staf
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalReservations int64                   `json:"total_reservations"`
		TodayReservations int64                   `json:"today_reservations"`
		ReservationStats  map[string]int64        `json:"reservation_stats"`
		WaitlistStats     map[string]int64        `json:"waitlist_stats"`
		Floor             *services.FloorSnapshot `json:"floor"`
	}
	stats.ReservationStats = make(map[string]int64)
	stats.WaitlistStats = make(map[string]int64)

	ac.DB.Model(&models.Reservation{}).Count(&stats.TotalReservations)
	ac.DB.Model(&models.Reservation{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayReservations)

	for _, status := range []string{
		models.ReservationQueued, models.ReservationSeated,
		models.ReservationCompleted, models.ReservationCancelled, models.ReservationNoShow,
	} {
		var count int64
		ac.DB.Model(&models.Reservation{}).
			Where("status = ? AND DATE(created_at) = ?", status, today).
			Count(&count)
		stats.ReservationStats[status] = count
	}

	for _, status := range []string{models.WaitlistWaiting, models.WaitlistCalled, models.WaitlistSeated} {
		var count int64
		ac.DB.Model(&models.WaitlistEntry{}).Where("status = ?", status).Count(&count)
		stats.WaitlistStats[status] = count
	}

	snapshot, err := ac.Monitor.Snapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	stats.Floor = snapshot

	notifier.BroadcastDashboardUpdate(snapshot)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetNoShowRate -> rasio no-show terhadap seluruh reservasi
func (ac *AdminController) GetNoShowRate(c *gin.Context) {
	var total, noShows int64
	ac.DB.Model(&models.Reservation{}).Count(&total)
	ac.DB.Model(&models.Reservation{}).Where("status = ?", models.ReservationNoShow).Count(&noShows)

	rate := 0.0
	if total > 0 {
		rate = float64(noShows) / float64(total)
	}

	utils.RespondJSON(c, http.StatusOK, "No-show rate", gin.H{
		"total_reservations": total,
		"no_shows":           noShows,
		"no_show_rate":       rate,
	})
}

// GetPeakHours -> jumlah reservasi per jam kedatangan
func (ac *AdminController) GetPeakHours(c *gin.Context) {
	var rows []struct {
		Hour  string `json:"hour"`
		Count int64  `json:"count"`
	}
	err := ac.DB.Model(&models.Reservation{}).
		Select("strftime('%H', created_at) AS hour, COUNT(*) AS count").
		Group("hour").
		Order("hour ASC").
		Scan(&rows).Error
	if err != nil {
		// MySQL tidak punya strftime
		err = ac.DB.Model(&models.Reservation{}).
			Select("DATE_FORMAT(created_at, '%H') AS hour, COUNT(*) AS count").
			Group("hour").
			Order("hour ASC").
			Scan(&rows).Error
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Peak hours", rows)
}

// GetTableUtilization -> berapa kali tiap meja dipakai
func (ac *AdminController) GetTableUtilization(c *gin.Context) {
	var rows []struct {
		TableID     uint   `json:"table_id"`
		TableNumber string `json:"table_number"`
		Location    string `json:"location"`
		UsageCount  int64  `json:"usage_count"`
	}
	err := ac.DB.Model(&models.Table{}).
		Select("tables.id AS table_id, tables.table_number, tables.location, COUNT(reservations.id) AS usage_count").
		Joins("LEFT JOIN reservations ON reservations.table_id = tables.id").
		Group("tables.id").
		Order("usage_count DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table utilization", rows)
}

// GetWaitlistAnalytics -> kedalaman waitlist dan rata-rata durasi tunggu
func (ac *AdminController) GetWaitlistAnalytics(c *gin.Context) {
	var totalEntries, seated, cancelled int64
	ac.DB.Model(&models.WaitlistEntry{}).Count(&totalEntries)
	ac.DB.Model(&models.WaitlistEntry{}).Where("status = ?", models.WaitlistSeated).Count(&seated)
	ac.DB.Model(&models.WaitlistEntry{}).Where("status = ?", models.WaitlistCancelled).Count(&cancelled)

	// Rata-rata menit antara masuk waitlist dan duduk
	var entries []models.WaitlistEntry
	ac.DB.Where("status = ? AND seated_at IS NOT NULL", models.WaitlistSeated).Find(&entries)

	var avgWait float64
	if len(entries) > 0 {
		var total time.Duration
		for _, e := range entries {
			total += e.SeatedAt.Sub(e.CreatedAt)
		}
		avgWait = total.Minutes() / float64(len(entries))
	}

	utils.RespondJSON(c, http.StatusOK, "Waitlist analytics", gin.H{
		"total_entries":    totalEntries,
		"seated":           seated,
		"cancelled":        cancelled,
		"avg_wait_minutes": avgWait,
	})
}
