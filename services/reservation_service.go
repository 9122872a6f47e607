package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

// Notifier adalah kolaborator eksternal fire-and-forget. Implementasinya
// wajib menelan kegagalannya sendiri; service tidak pernah menunggu atau
// mempropagasi error notifikasi.
type Notifier interface {
	ReservationConfirmed(r models.Reservation)
	WaitlistAdded(e models.WaitlistEntry)
	TableReady(e models.WaitlistEntry, t *models.Table)
}

// BookingRequest adalah input booking yang sudah lepas dari bentuk transport.
type BookingRequest struct {
	Name              string
	PhoneNumber       string
	Email             *string
	Adults            int
	Children          int
	ChildSeatRequired bool
	Location          string
	Notes             *string
	ReservationType   string
	IsScheduled       bool
	ReservationDate   *time.Time
	ReservationTime   *string
}

// BookingResult: salah satu dari Reservation atau Waitlisted yang terisi.
type BookingResult struct {
	Reservation *models.Reservation
	Waitlisted  *models.WaitlistEntry
}

// ReservationService adalah state machine reservasi. Satu mutex global
// menserialisasi urutan cari-meja + tulis (dan pembagian nomor antrian)
// supaya dua request bersamaan tidak mengklaim meja atau nomor yang sama.
// Beban kerja sistem ini tidak high-throughput, jadi satu titik serialisasi
// sudah memadai.
type ReservationService struct {
	DB        *gorm.DB
	Registry  *TableRegistry
	Sequencer *QueueSequencer
	Schedule  *ScheduleService
	Notifier  Notifier

	mu sync.Mutex
}

func NewReservationService(db *gorm.DB, registry *TableRegistry, sequencer *QueueSequencer, schedule *ScheduleService, notifier Notifier) *ReservationService {
	return &ReservationService{
		DB:        db,
		Registry:  registry,
		Sequencer: sequencer,
		Schedule:  schedule,
		Notifier:  notifier,
	}
}

// CreateReservation menjalankan satu operasi logis cari-meja lalu
// buat-reservasi-atau-waitlist:
//   - meja ketemu  -> langsung Seated, meja ditandai terisi
//   - tidak ada meja, bukan terjadwal -> dialihkan jadi WaitlistEntry(Waiting)
//   - terjadwal dan slotnya penuh     -> ErrConflict
//
// Customer di-upsert berdasarkan nomor telepon.
func (rs *ReservationService) CreateReservation(req BookingRequest) (*BookingResult, error) {
	if err := rs.validate(&req); err != nil {
		return nil, err
	}

	// Booking terjadwal ke hari tutup ditolak sebelum menyentuh alokasi.
	if req.IsScheduled && rs.Schedule != nil {
		status, err := rs.Schedule.IsOpenAt(*req.ReservationDate, *req.ReservationTime)
		if err != nil {
			return nil, err
		}
		if !status.IsOpen {
			return nil, fmt.Errorf("%s: %w", status.Reason, ErrUnavailable)
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	result := &BookingResult{}
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := rs.upsertCustomer(tx, req)
		if err != nil {
			return err
		}

		if req.IsScheduled {
			if err := rs.checkScheduleConflict(tx, req); err != nil {
				return err
			}
		}

		table, err := rs.Registry.FindCandidate(tx, req.Location, req.Adults+req.Children)
		if err != nil {
			return err
		}

		// Walk-in tanpa meja dialihkan ke waitlist, bukan ditolak.
		if table == nil && !req.IsScheduled {
			entry := &models.WaitlistEntry{
				CustomerID:        customer.ID,
				Adults:            req.Adults,
				Children:          req.Children,
				ChildSeatRequired: req.ChildSeatRequired,
				Location:          req.Location,
				Notes:             req.Notes,
			}
			if err := rs.Sequencer.Enqueue(tx, entry); err != nil {
				return err
			}
			entry.Customer = customer
			result.Waitlisted = entry
			return nil
		}

		now := time.Now()
		queueNumber, err := rs.Sequencer.NextQueueNumber(tx, now)
		if err != nil {
			return err
		}

		reservation := &models.Reservation{
			CustomerID:        customer.ID,
			Adults:            req.Adults,
			Children:          req.Children,
			ChildSeatRequired: req.ChildSeatRequired,
			Status:            models.ReservationQueued,
			QueueNumber:       queueNumber,
			ReservationType:   req.ReservationType,
			IsScheduled:       req.IsScheduled,
			ReservationDate:   req.ReservationDate,
			ReservationTime:   req.ReservationTime,
			Notes:             req.Notes,
		}
		if table != nil {
			reservation.TableID = &table.ID
			reservation.Status = models.ReservationSeated
			reservation.SeatedAt = &now
		}
		if err := tx.Create(reservation).Error; err != nil {
			return err
		}
		if table != nil {
			if err := rs.Registry.MarkOccupied(tx, table.ID); err != nil {
				return err
			}
			reservation.Table = table
		}
		reservation.Customer = customer
		result.Reservation = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notifikasi dikirim setelah commit dan tidak pernah menggagalkan booking.
	if rs.Notifier != nil {
		if result.Reservation != nil {
			rs.Notifier.ReservationConfirmed(*result.Reservation)
		} else if result.Waitlisted != nil {
			rs.Notifier.WaitlistAdded(*result.Waitlisted)
		}
	}
	return result, nil
}

// AssignTable memindahkan reservasi Queued ke Seated pada meja tertentu.
// Meja harus kosong saat assignment, kalau tidak ErrConflict.
func (rs *ReservationService) AssignTable(reservationID, tableID uint) (*models.Reservation, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var reservation models.Reservation
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := rs.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		if reservation.Status != models.ReservationQueued {
			return fmt.Errorf("reservation %d is %s, not Queued: %w", reservationID, reservation.Status, ErrConflict)
		}
		table, err := rs.Registry.GetTable(tx, tableID)
		if err != nil {
			return err
		}
		if table.IsOccupied {
			return fmt.Errorf("table %s is already occupied: %w", table.TableNumber, ErrConflict)
		}
		now := time.Now()
		reservation.TableID = &table.ID
		reservation.Status = models.ReservationSeated
		reservation.SeatedAt = &now
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		return rs.Registry.MarkOccupied(tx, table.ID)
	})
	if err != nil {
		return nil, err
	}

	if rs.Notifier != nil {
		rs.Notifier.ReservationConfirmed(reservation)
	}
	return &reservation, nil
}

// Complete menutup reservasi Seated dan membebaskan mejanya.
func (rs *ReservationService) Complete(reservationID uint) (*models.Reservation, error) {
	return rs.finish(reservationID, models.ReservationCompleted, []string{models.ReservationSeated})
}

// Cancel membatalkan reservasi Queued/Seated dan membebaskan meja jika ada.
// Membatalkan reservasi yang sudah terminal menghasilkan ErrConflict.
func (rs *ReservationService) Cancel(reservationID uint) (*models.Reservation, error) {
	return rs.finish(reservationID, models.ReservationCancelled, []string{models.ReservationQueued, models.ReservationSeated})
}

// MarkNoShow menandai reservasi Queued sebagai No-show.
func (rs *ReservationService) MarkNoShow(reservationID uint) (*models.Reservation, error) {
	return rs.finish(reservationID, models.ReservationNoShow, []string{models.ReservationQueued})
}

func (rs *ReservationService) finish(reservationID uint, target string, allowedFrom []string) (*models.Reservation, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var reservation models.Reservation
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := rs.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		allowed := false
		for _, s := range allowedFrom {
			if reservation.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("reservation %d is %s, cannot transition to %s: %w",
				reservationID, reservation.Status, target, ErrConflict)
		}
		if reservation.TableID != nil {
			if err := rs.Registry.MarkFree(tx, *reservation.TableID); err != nil {
				return err
			}
		}
		reservation.Status = target
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Reservation %d -> %s", reservation.ID, reservation.Status)
	return &reservation, nil
}

// Promote adalah langkah promosi on-demand (dipanggil staf, bukan scheduler
// background): memindai FIFO waitlist dan mendudukkan setiap entry paling
// awal yang kompatibel dengan meja kosong manapun, sampai tidak ada lagi
// yang cocok. Entry yang dipromosikan menjadi catatan seating itu sendiri.
func (rs *ReservationService) Promote() ([]models.WaitlistEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var promoted []models.WaitlistEntry
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		entries, err := rs.Sequencer.Waiting(tx)
		if err != nil {
			return err
		}
		now := time.Now()
		for i := range entries {
			entry := &entries[i]
			table, err := rs.Registry.FindCandidate(tx, entry.Location, entry.PartySize())
			if err != nil {
				return err
			}
			if table == nil {
				continue
			}
			if err := rs.Registry.MarkOccupied(tx, table.ID); err != nil {
				return err
			}
			entry.TableID = &table.ID
			entry.Status = models.WaitlistSeated
			entry.SeatedAt = &now
			if err := tx.Save(entry).Error; err != nil {
				return err
			}
			entry.Table = table
			promoted = append(promoted, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rs.Notifier != nil {
		for i := range promoted {
			rs.Notifier.TableReady(promoted[i], promoted[i].Table)
		}
	}
	return promoted, nil
}

// AddToWaitlist menambahkan tamu langsung ke waitlist (jalur staf).
func (rs *ReservationService) AddToWaitlist(req BookingRequest) (*models.WaitlistEntry, error) {
	if err := rs.validate(&req); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entry models.WaitlistEntry
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := rs.upsertCustomer(tx, req)
		if err != nil {
			return err
		}
		entry = models.WaitlistEntry{
			CustomerID:        customer.ID,
			Adults:            req.Adults,
			Children:          req.Children,
			ChildSeatRequired: req.ChildSeatRequired,
			Location:          req.Location,
			Notes:             req.Notes,
		}
		if err := rs.Sequencer.Enqueue(tx, &entry); err != nil {
			return err
		}
		entry.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rs.Notifier != nil {
		rs.Notifier.WaitlistAdded(entry)
	}
	return &entry, nil
}

// CallWaitlist menandai entry Waiting sebagai Called (staf memberi sinyal
// meja hampir siap) dan menstempel called_at.
func (rs *ReservationService) CallWaitlist(entryID uint) (*models.WaitlistEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entry models.WaitlistEntry
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := rs.loadWaitlist(tx, entryID, &entry); err != nil {
			return err
		}
		if entry.Status != models.WaitlistWaiting {
			return fmt.Errorf("waitlist entry %d is %s, not Waiting: %w", entryID, entry.Status, ErrConflict)
		}
		now := time.Now()
		entry.Status = models.WaitlistCalled
		entry.CalledAt = &now
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	if rs.Notifier != nil {
		rs.Notifier.TableReady(entry, nil)
	}
	return &entry, nil
}

// SeatWaitlist mendudukkan entry Waiting/Called di meja tertentu.
func (rs *ReservationService) SeatWaitlist(entryID, tableID uint) (*models.WaitlistEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entry models.WaitlistEntry
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := rs.loadWaitlist(tx, entryID, &entry); err != nil {
			return err
		}
		if entry.Status != models.WaitlistWaiting && entry.Status != models.WaitlistCalled {
			return fmt.Errorf("waitlist entry %d is %s: %w", entryID, entry.Status, ErrConflict)
		}
		table, err := rs.Registry.GetTable(tx, tableID)
		if err != nil {
			return err
		}
		if table.IsOccupied {
			return fmt.Errorf("table %s is already occupied: %w", table.TableNumber, ErrConflict)
		}
		if table.Location != entry.Location || table.Size < entry.PartySize() {
			return fmt.Errorf("table %s does not fit the party: %w", table.TableNumber, ErrConflict)
		}
		now := time.Now()
		entry.TableID = &table.ID
		entry.Status = models.WaitlistSeated
		entry.SeatedAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}
		return rs.Registry.MarkOccupied(tx, table.ID)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CancelWaitlist membatalkan entry yang masih Waiting/Called.
func (rs *ReservationService) CancelWaitlist(entryID uint) (*models.WaitlistEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entry models.WaitlistEntry
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := rs.loadWaitlist(tx, entryID, &entry); err != nil {
			return err
		}
		if entry.Status != models.WaitlistWaiting && entry.Status != models.WaitlistCalled {
			return fmt.Errorf("waitlist entry %d is %s: %w", entryID, entry.Status, ErrConflict)
		}
		entry.Status = models.WaitlistCancelled
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// VacateWaitlistSeat menutup seating waitlist dan membebaskan mejanya.
func (rs *ReservationService) VacateWaitlistSeat(entryID uint) (*models.WaitlistEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entry models.WaitlistEntry
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		if err := rs.loadWaitlist(tx, entryID, &entry); err != nil {
			return err
		}
		if entry.Status != models.WaitlistSeated {
			return fmt.Errorf("waitlist entry %d is %s, not Seated: %w", entryID, entry.Status, ErrConflict)
		}
		if entry.TableID != nil {
			if err := rs.Registry.MarkFree(tx, *entry.TableID); err != nil {
				return err
			}
		}
		entry.Status = models.WaitlistCancelled
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// --- helpers ---

func (rs *ReservationService) validate(req *BookingRequest) error {
	if req.Adults < 0 || req.Children < 0 || req.Adults+req.Children <= 0 {
		return fmt.Errorf("party size must be positive: %w", ErrInvalidInput)
	}
	if !models.ValidLocation(req.Location) {
		return fmt.Errorf("unknown location %q: %w", req.Location, ErrInvalidInput)
	}
	if req.PhoneNumber == "" {
		return fmt.Errorf("phone number is required: %w", ErrInvalidInput)
	}
	if req.ReservationType == "" {
		req.ReservationType = models.TypePhone
	}
	if !models.ValidReservationType(req.ReservationType) {
		return fmt.Errorf("unknown reservation type %q: %w", req.ReservationType, ErrInvalidInput)
	}
	if req.IsScheduled {
		if req.ReservationDate == nil || req.ReservationTime == nil {
			return fmt.Errorf("scheduled reservation needs date and time: %w", ErrInvalidInput)
		}
		if !models.ValidClockTime(*req.ReservationTime) {
			return fmt.Errorf("reservation time must be HH:MM: %w", ErrInvalidInput)
		}
	}
	return nil
}

func (rs *ReservationService) upsertCustomer(tx *gorm.DB, req BookingRequest) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("phone_number = ?", req.PhoneNumber).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Notes:       req.Notes,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// checkScheduleConflict: hitung reservasi Queued/Seated yang sudah memegang
// meja yang cocok untuk request ini pada (date,time) yang sama persis; jika
// meja kosong yang cocok tidak lebih banyak dari itu, tolak dengan Conflict.
// Ini cek kasar (kesamaan slot persis, tanpa model durasi/overlap) dan
// dipertahankan apa adanya.
func (rs *ReservationService) checkScheduleConflict(tx *gorm.DB, req BookingRequest) error {
	var conflicting int64
	err := tx.Model(&models.Reservation{}).
		Joins("JOIN tables ON tables.id = reservations.table_id").
		Where("reservation_date = ? AND reservation_time = ?", req.ReservationDate, req.ReservationTime).
		Where("reservations.status IN ?", []string{models.ReservationQueued, models.ReservationSeated}).
		Where("tables.location = ? AND tables.size >= ?", req.Location, req.Adults+req.Children).
		Count(&conflicting).Error
	if err != nil {
		return err
	}
	if conflicting == 0 {
		return nil
	}

	available, err := rs.Registry.CountFreeMatching(tx, req.Location, req.Adults+req.Children)
	if err != nil {
		return err
	}
	if available <= conflicting {
		return fmt.Errorf("no tables available for %s on %s: %w",
			*req.ReservationTime, req.ReservationDate.Format("2006-01-02"), ErrConflict)
	}
	return nil
}

func (rs *ReservationService) loadReservation(tx *gorm.DB, id uint, out *models.Reservation) error {
	if err := tx.Preload("Customer").First(out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

func (rs *ReservationService) loadWaitlist(tx *gorm.DB, id uint, out *models.WaitlistEntry) error {
	if err := tx.Preload("Customer").First(out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("waitlist entry %d: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}
