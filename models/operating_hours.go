package models

import "time"

// OperatingHours menyimpan jam buka per hari (0=Senin .. 6=Minggu).
type OperatingHours struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DayOfWeek int       `gorm:"not null;uniqueIndex" json:"day_of_week"`
	OpenTime  string    `gorm:"type:varchar(5);not null" json:"open_time"`  // HH:MM
	CloseTime string    `gorm:"type:varchar(5);not null" json:"close_time"` // HH:MM
	IsOpen    bool      `gorm:"not null;default:true" json:"is_open"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
