package models

import "time"

// Waitlist statuses
const (
	WaitlistWaiting   = "Waiting"
	WaitlistCalled    = "Called"
	WaitlistSeated    = "Seated"
	WaitlistCancelled = "Cancelled"
)

// WaitlistEntry menampung tamu walk-in yang belum mendapat meja.
// Saat dipromosikan ke Seated, entry ini sendiri yang jadi catatan seating
// (tidak dibuat Reservation baru).
type WaitlistEntry struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CustomerID        uint       `gorm:"not null;index" json:"customer_id"`
	Customer          *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TableID           *uint      `gorm:"index" json:"table_id,omitempty"`
	Table             *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Adults            int        `gorm:"not null" json:"adults"`
	Children          int        `gorm:"not null" json:"children"`
	ChildSeatRequired bool       `gorm:"not null;default:false" json:"child_seat_required"`
	Location          string     `gorm:"type:varchar(20);not null" json:"location"`
	Status            string     `gorm:"type:varchar(20);not null;default:'Waiting'" json:"status"`
	EstimatedWaitTime *int       `json:"estimated_wait_time,omitempty"` // menit
	Notes             *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
	CalledAt          *time.Time `json:"called_at,omitempty"`
	SeatedAt          *time.Time `json:"seated_at,omitempty"`
}

// PartySize menghitung total tamu (dewasa + anak)
func (w *WaitlistEntry) PartySize() int {
	return w.Adults + w.Children
}
