package models

import (
	"time"
)

// GuestHistory is the per-guest snapshot written at checkout. Money columns
// are filled on the primary guest's row only, so sums over a booking stay exact.
type GuestHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID  uint   `gorm:"column:booking_id;index" json:"booking_id"`
	RoomID     uint   `gorm:"column:room_id;index" json:"room_id"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"room_number"`

	Name                   string `gorm:"size:150" json:"name"`
	Age                    int    `json:"age"`
	Phone                  string `gorm:"size:20" json:"phone"`
	Gender                 string `gorm:"size:20" json:"gender"`
	IsPrimary              bool   `gorm:"column:is_primary" json:"is_primary"`
	IDProofType            string `gorm:"column:id_proof_type;size:30" json:"id_proof_type,omitempty"`
	IDProofNumber          string `gorm:"column:id_proof_number;size:30" json:"id_proof_number,omitempty"`
	Address                string `gorm:"type:text" json:"address,omitempty"`
	City                   string `gorm:"size:100" json:"city,omitempty"`
	State                  string `gorm:"size:100" json:"state,omitempty"`
	EmergencyContactName   string `gorm:"column:emergency_contact_name;size:150" json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber string `gorm:"column:emergency_contact_number;size:20" json:"emergency_contact_number,omitempty"`

	CheckinTime  time.Time `gorm:"column:checkin_time;index" json:"checkin_time"`
	CheckoutTime time.Time `gorm:"column:checkout_time;index" json:"checkout_time"`
	StayDays     int       `gorm:"column:stay_days" json:"stay_days"`

	GrossTotal     float64 `gorm:"column:gross_total" json:"gross_total"`
	Discount       float64 `gorm:"column:discount" json:"discount"`
	AdvancePayment float64 `gorm:"column:advance_payment" json:"advance_payment"`
	ExtraCharges   float64 `gorm:"column:extra_charges" json:"extra_charges"`
	PaymentMethod  string  `gorm:"column:payment_method;size:20" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
}

func (GuestHistory) TableName() string {
	return "guest_history"
}
