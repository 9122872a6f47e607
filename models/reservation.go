package models

import (
	"regexp"
	"time"
)

// Reservation statuses
const (
	ReservationQueued    = "Queued"
	ReservationSeated    = "Seated"
	ReservationCompleted = "Completed"
	ReservationCancelled = "Cancelled"
	ReservationNoShow    = "No-show"
)

// Reservation types
const (
	TypeWalkIn = "walk-in"
	TypePhone  = "phone"
	TypeOnline = "online"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClockTime memvalidasi format jam HH:MM (24 jam)
func ValidClockTime(s string) bool {
	return clockPattern.MatchString(s)
}

// ValidReservationType memvalidasi tipe reservasi
func ValidReservationType(t string) bool {
	return t == TypeWalkIn || t == TypePhone || t == TypeOnline
}

type Reservation struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CustomerID        uint       `gorm:"not null;index" json:"customer_id"`
	Customer          *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TableID           *uint      `gorm:"index" json:"table_id,omitempty"`
	Table             *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Adults            int        `gorm:"not null" json:"adults"`
	Children          int        `gorm:"not null" json:"children"`
	ChildSeatRequired bool       `gorm:"not null;default:false" json:"child_seat_required"`
	Status            string     `gorm:"type:varchar(20);not null;default:'Queued'" json:"status"`
	QueueNumber       int        `gorm:"not null;index" json:"queue_number"`
	ReservationType   string     `gorm:"type:varchar(20);not null;default:'phone'" json:"reservation_type"`
	IsScheduled       bool       `gorm:"not null;default:false" json:"is_scheduled"`
	ReservationDate   *time.Time `gorm:"type:date;index" json:"reservation_date,omitempty"`
	ReservationTime   *string    `gorm:"type:varchar(5)" json:"reservation_time,omitempty"`
	Notes             *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
	SeatedAt          *time.Time `json:"seated_at,omitempty"`
}

// PartySize menghitung total tamu (dewasa + anak)
func (r *Reservation) PartySize() int {
	return r.Adults + r.Children
}

// IsTerminal melaporkan apakah reservasi sudah berada di status akhir
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}
