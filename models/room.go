package models

import (
	"time"
)

const (
	RoomAvailable = "Available"
	RoomOccupied  = "Occupied"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber string  `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"room_number"`
	RoomType   string  `gorm:"column:room_type;size:50;index" json:"room_type"`
	Floor      string  `gorm:"column:floor;type:varchar(10)" json:"floor"`
	BasePrice  float64 `gorm:"column:base_price" json:"base_price"`
	Status     string  `gorm:"column:status;size:20;default:Available;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Room) IsAvailable() bool {
	return r.Status == RoomAvailable
}
