package models

import (
	"time"
)

// Notification adalah catatan event yang sudah dikirim dispatcher
// (konfirmasi reservasi, waitlist, table ready) untuk ditampilkan ke staf.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Event      string    `gorm:"type:varchar(50);not null;index" json:"event"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
