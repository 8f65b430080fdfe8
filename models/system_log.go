package models

import (
	"time"
)

// SystemLog is one audit trail entry.
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:64;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	UserID    *uint     `gorm:"column:user_id;index" json:"user_id"`
	BookingID *uint     `gorm:"column:booking_id;index" json:"booking_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
