package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> direktori customer, filter opsional nama/telepon
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	query := cc.DB

	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone_number LIKE ?", "%"+phone+"%")
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> detail satu customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	customerID := c.Param("customer_id")
	var customer models.Customer
	if err := cc.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// GetCustomerReservations -> riwayat reservasi satu customer
func (cc *CustomerController) GetCustomerReservations(c *gin.Context) {
	customerID := c.Param("customer_id")

	var customer models.Customer
	if err := cc.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var reservations []models.Reservation
	if err := cc.DB.Preload("Table").
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer reservations", reservations)
}

// GetFrequentCustomers -> customer dengan kunjungan >= min_visits
func (cc *CustomerController) GetFrequentCustomers(c *gin.Context) {
	minVisits := c.DefaultQuery("min_visits", "2")

	var results []struct {
		models.Customer
		VisitCount int64 `json:"visit_count"`
	}
	err := cc.DB.Model(&models.Customer{}).
		Select("customers.*, COUNT(reservations.id) AS visit_count").
		Joins("LEFT JOIN reservations ON reservations.customer_id = customers.id").
		Group("customers.id").
		Having("COUNT(reservations.id) >= ?", minVisits).
		Order("visit_count DESC").
		Scan(&results).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Frequent customers", results)
}
