package models

import (
	"time"
)

// Customer dibuat otomatis saat booking pertama berdasarkan nomor telepon.
type Customer struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	PhoneNumber string        `gorm:"type:varchar(50);unique;not null" json:"phone_number"`
	Email       *string       `gorm:"type:varchar(255)" json:"email,omitempty"`
	Notes       *string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
	Reservations []Reservation `gorm:"foreignKey:CustomerID" json:"reservations,omitempty"`
}
