package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	Name      string `gorm:"size:150" json:"name"`
	Age       int    `json:"age"`
	Phone     string `gorm:"size:20" json:"phone"`
	Gender    string `gorm:"size:20" json:"gender"`
	IsPrimary bool   `gorm:"column:is_primary;default:false" json:"is_primary"`

	// primary guest only
	IDProofType            string `gorm:"column:id_proof_type;size:30" json:"id_proof_type,omitempty"`
	IDProofNumber          string `gorm:"column:id_proof_number;size:30" json:"id_proof_number,omitempty"`
	Address                string `gorm:"type:text" json:"address,omitempty"`
	City                   string `gorm:"size:100" json:"city,omitempty"`
	State                  string `gorm:"size:100" json:"state,omitempty"`
	EmergencyContactName   string `gorm:"column:emergency_contact_name;size:150" json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber string `gorm:"column:emergency_contact_number;size:20" json:"emergency_contact_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
