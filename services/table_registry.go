package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/reservation-app/models"
	"gorm.io/gorm"
)

// TableRegistry memegang set meja beserta flag occupancy-nya.
// Semua mutasi occupancy lewat sini supaya invariannya terjaga.
type TableRegistry struct {
	DB *gorm.DB
}

func NewTableRegistry(db *gorm.DB) *TableRegistry {
	return &TableRegistry{DB: db}
}

// FindCandidate mencari meja kosong di lokasi yang diminta dengan kapasitas
// >= minSize. Tie-break deterministik: ukuran terkecil dulu (mengurangi
// fragmentasi), lalu table_number terendah. Read-only; mutasi adalah urusan
// state machine supaya pengecekan konflik terjadi sebelum commit.
func (tr *TableRegistry) FindCandidate(tx *gorm.DB, location string, minSize int) (*models.Table, error) {
	var table models.Table
	err := tx.Where("location = ? AND is_occupied = ? AND size >= ?", location, false, minSize).
		Order("size ASC").
		Order("table_number ASC").
		First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// CountFreeMatching menghitung meja kosong yang cocok (untuk deteksi konflik
// reservasi terjadwal).
func (tr *TableRegistry) CountFreeMatching(tx *gorm.DB, location string, minSize int) (int64, error) {
	var count int64
	err := tx.Model(&models.Table{}).
		Where("location = ? AND is_occupied = ? AND size >= ?", location, false, minSize).
		Count(&count).Error
	return count, err
}

// MarkOccupied menandai meja terisi. Idempoten: menandai meja yang sudah
// terisi bukan error.
func (tr *TableRegistry) MarkOccupied(tx *gorm.DB, tableID uint) error {
	return tr.setOccupied(tx, tableID, true)
}

// MarkFree menandai meja kosong. Idempoten seperti MarkOccupied.
func (tr *TableRegistry) MarkFree(tx *gorm.DB, tableID uint) error {
	return tr.setOccupied(tx, tableID, false)
}

func (tr *TableRegistry) setOccupied(tx *gorm.DB, tableID uint, occupied bool) error {
	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("table %d: %w", tableID, ErrNotFound)
		}
		return err
	}
	if table.IsOccupied == occupied {
		return nil
	}
	table.IsOccupied = occupied
	return tx.Save(&table).Error
}

// GetTable mengambil satu meja, ErrNotFound jika tidak ada.
func (tr *TableRegistry) GetTable(tx *gorm.DB, tableID uint) (*models.Table, error) {
	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("table %d: %w", tableID, ErrNotFound)
		}
		return nil, err
	}
	return &table, nil
}
