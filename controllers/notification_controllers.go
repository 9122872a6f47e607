package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> riwayat event yang sudah dikirim dispatcher
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	query := nc.DB.Preload("Customer")
	if event := c.Query("event"); event != "" {
		query = query.Where("event = ?", event)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}

// DeleteNotification -> hapus satu catatan notifikasi
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	notifID := c.Param("notif_id")

	var notification models.Notification
	if err := nc.DB.First(&notification, notifID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := nc.DB.Delete(&notification).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"id": notification.ID})
}
