package models

import (
	"time"
)

// Booking is an active stay. The row is removed at checkout once its
// guests have been copied into guest_history.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"column:room_id;index" json:"room_id"`

	CheckinTime  time.Time `gorm:"column:checkin_time" json:"checkin_time"`
	CheckoutTime time.Time `gorm:"column:checkout_time" json:"checkout_time"`
	StayDays     int       `gorm:"column:stay_days" json:"stay_days"`

	RoomCharge     float64 `gorm:"column:room_charge" json:"room_charge"`
	Discount       float64 `gorm:"column:discount;default:0" json:"discount"`
	AdvancePayment float64 `gorm:"column:advance_payment;default:0" json:"advance_payment"`
	GrossTotal     float64 `gorm:"column:gross_total" json:"gross_total"`

	OperatorID *uint `gorm:"column:operator_id;index" json:"operator_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room   Room    `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Guests []Guest `gorm:"foreignKey:BookingID" json:"guests,omitempty"`
}
