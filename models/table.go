package models

import "time"

// Seating locations (hard matching constraint for tables and bookings)
const (
	LocationIndoor  = "Indoor"
	LocationOutdoor = "Outdoor"
)

// ValidLocation memvalidasi lokasi meja
func ValidLocation(location string) bool {
	return location == LocationIndoor || location == LocationOutdoor
}

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(50);unique;not null" json:"table_number"`
	Location    string    `gorm:"type:varchar(20);not null" json:"location"`
	Size        int       `gorm:"not null" json:"size"`
	IsOccupied  bool      `gorm:"not null;default:false" json:"is_occupied"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
