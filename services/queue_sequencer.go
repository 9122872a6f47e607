package services

import (
	"database/sql"
	"time"

	"github.com/yeremiapane/reservation-app/models"
	"gorm.io/gorm"
)

// QueueSequencer mengurus nomor antrian harian dan urutan waitlist.
// Semua method dipanggil di dalam critical section ReservationService,
// sehingga pembacaan max + assign bebas race.
type QueueSequencer struct {
	DB *gorm.DB
}

func NewQueueSequencer(db *gorm.DB) *QueueSequencer {
	return &QueueSequencer{DB: db}
}

// NextQueueNumber menghitung 1 + max(queue_number) untuk reservasi yang
// dibuat pada hari `day`, atau 1 jika belum ada. Nomor bersifat sekuensial
// per hari kalender dan tidak pernah dipakai ulang.
func (qs *QueueSequencer) NextQueueNumber(tx *gorm.DB, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var max sql.NullInt64
	row := tx.Model(&models.Reservation{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("MAX(queue_number)").
		Row()
	if err := row.Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

// Enqueue menambahkan entry baru ke waitlist dengan status Waiting.
// Urutan FIFO mengikuti created_at.
func (qs *QueueSequencer) Enqueue(tx *gorm.DB, entry *models.WaitlistEntry) error {
	entry.Status = models.WaitlistWaiting
	return tx.Create(entry).Error
}

// Waiting mengembalikan seluruh entry Waiting berurut created_at ascending.
func (qs *QueueSequencer) Waiting(tx *gorm.DB) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	err := tx.Preload("Customer").
		Where("status = ?", models.WaitlistWaiting).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// DequeueNextMatching memindai FIFO dan mengembalikan entry Waiting pertama
// (berdasarkan kedatangan) yang lokasinya cocok dan rombongannya muat di
// kapasitas yang diberikan. Ini first-fit berdasarkan urutan kedatangan,
// BUKAN sekadar head-of-queue: rombongan besar di depan tidak memblokir
// rombongan kecil di belakangnya.
func (qs *QueueSequencer) DequeueNextMatching(tx *gorm.DB, location string, capacity int) (*models.WaitlistEntry, error) {
	entries, err := qs.Waiting(tx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Location == location && entries[i].PartySize() <= capacity {
			return &entries[i], nil
		}
	}
	return nil, nil
}
