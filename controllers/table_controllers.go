package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/notifier"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Location    string `json:"location" binding:"required"`
		Size        int    `json:"size" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidLocation(req.Location) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("location must be %s or %s", models.LocationIndoor, models.LocationOutdoor))
		return
	}
	if req.Size < 1 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("size must be at least 1"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Location:    req.Location,
		Size:        req.Size,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notifier.BroadcastMessage(notifier.Message{
		Event: notifier.EventTableCreate,
		Data:  table,
	})

	utils.InfoLogger.Printf("New table created: %s (%s, %d seats)", table.TableNumber, table.Location, table.Size)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja, filter opsional location/free
func (tc *TableController) GetAllTables(c *gin.Context) {
	query := tc.DB

	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}
	if c.Query("free") == "true" {
		query = query.Where("is_occupied = ?", false)
	}

	var tables []models.Table
	if err := query.Order("table_number ASC").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> ubah nomor/lokasi/kapasitas meja
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var body struct {
		TableNumber *string `json:"table_number"`
		Location    *string `json:"location"`
		Size        *int    `json:"size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.TableNumber != nil {
		table.TableNumber = *body.TableNumber
	}
	if body.Location != nil {
		if !models.ValidLocation(*body.Location) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown location %q", *body.Location))
			return
		}
		table.Location = *body.Location
	}
	if body.Size != nil {
		if *body.Size < 1 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("size must be at least 1"))
			return
		}
		table.Size = *body.Size
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notifier.BroadcastMessage(notifier.Message{
		Event: notifier.EventTableUpdate,
		Data:  table,
	})

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// UpdateCapacity -> ubah kapasitas saja (edit administratif)
func (tc *TableController) UpdateCapacity(c *gin.Context) {
	tableID := c.Param("table_id")

	var body struct {
		NewCapacity int `json:"new_capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.NewCapacity < 1 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("capacity must be at least 1"))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Size = body.NewCapacity
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK,
		fmt.Sprintf("Table %s capacity updated to %d", table.TableNumber, table.Size), table)
}

// UpdateOccupancy -> override manual flag occupancy oleh staf.
// Jalur normal lewat state machine; ini untuk koreksi di lapangan.
func (tc *TableController) UpdateOccupancy(c *gin.Context) {
	tableID := c.Param("table_id")

	var body struct {
		IsOccupied *bool `json:"is_occupied" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.IsOccupied = *body.IsOccupied
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notifier.BroadcastMessage(notifier.Message{
		Event: notifier.EventTableUpdate,
		Data:  table,
	})

	utils.InfoLogger.Printf("Table %d occupancy overridden to %v", table.ID, table.IsOccupied)
	utils.RespondJSON(c, http.StatusOK, "Table occupancy updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if table.IsOccupied {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("table %s is occupied", table.TableNumber))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notifier.BroadcastMessage(notifier.Message{
		Event: notifier.EventTableDelete,
		Data:  gin.H{"table_id": table.ID},
	})

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}
