package models

import "time"

// Holiday meng-override jam operasional reguler pada tanggal tertentu.
type Holiday struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
	IsClosed     bool      `gorm:"not null;default:true" json:"is_closed"`
	SpecialHours *string   `gorm:"type:varchar(11)" json:"special_hours,omitempty"` // "HH:MM-HH:MM"
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
