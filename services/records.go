package services

import (
	"strings"
	"time"

	"hotel-frontdesk/billing"
	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"
)

// GuestForm is one guest as entered on the check-in or edit screen.
// ID is local to the form until the guest is saved.
type GuestForm struct {
	ID                     uint   `json:"id"`
	Name                   string `json:"name"`
	Age                    int    `json:"age"`
	Phone                  string `json:"phone"`
	Gender                 string `json:"gender"`
	IsPrimary              bool   `json:"is_primary"`
	IDProofType            string `json:"id_proof_type,omitempty"`
	IDProofNumber          string `json:"id_proof_number,omitempty"`
	Address                string `json:"address,omitempty"`
	City                   string `json:"city,omitempty"`
	State                  string `json:"state,omitempty"`
	EmergencyContactName   string `json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber string `json:"emergency_contact_number,omitempty"`
}

// SelectPrimary returns the flagged primary guest, falling back to the first one.
func SelectPrimary(guests []GuestForm) (GuestForm, bool) {
	for _, g := range guests {
		if g.IsPrimary {
			return g, true
		}
	}
	if len(guests) == 0 {
		return GuestForm{}, false
	}
	return guests[0], true
}

// PrimaryGuest is SelectPrimary for stored guests.
func PrimaryGuest(guests []models.Guest) (models.Guest, bool) {
	for _, g := range guests {
		if g.IsPrimary {
			return g, true
		}
	}
	if len(guests) == 0 {
		return models.Guest{}, false
	}
	return guests[0], true
}

// ReassignPrimaryOnRemoval drops removedID and, if it was the primary,
// promotes the first remaining guest. The input slice is not modified.
func ReassignPrimaryOnRemoval(guests []GuestForm, removedID uint) []GuestForm {
	out := make([]GuestForm, 0, len(guests))
	removedPrimary := false
	for _, g := range guests {
		if g.ID == removedID {
			removedPrimary = removedPrimary || g.IsPrimary
			continue
		}
		out = append(out, g)
	}
	if removedPrimary && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out
}

// GuestState is the state that drives GST for a party.
func GuestState(guests []GuestForm) string {
	p, _ := SelectPrimary(guests)
	return billing.NormalizeState(p.State)
}

// ToBookingInsert maps a confirmed check-in to its booking row.
func ToBookingInsert(room models.Room, checkin time.Time, stay billing.Stay, bill billing.ProvisionalBill, advance float64) models.Booking {
	return models.Booking{
		RoomID:         room.ID,
		CheckinTime:    civiltime.ToCivil(checkin),
		CheckoutTime:   civiltime.ToCivil(stay.Checkout),
		StayDays:       stay.Days,
		RoomCharge:     bill.RoomCharge,
		Discount:       bill.Discount,
		AdvancePayment: advance,
		GrossTotal:     bill.GrossTotal,
	}
}

// ToGuestInserts maps form guests to rows for bookingID. Identity and
// contact details are kept on the primary guest only.
func ToGuestInserts(bookingID uint, room models.Room, guests []GuestForm) []models.Guest {
	rows := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		row := models.Guest{
			BookingID: bookingID,
			RoomID:    room.ID,
			Name:      strings.TrimSpace(g.Name),
			Age:       g.Age,
			Phone:     strings.TrimSpace(g.Phone),
			Gender:    g.Gender,
			IsPrimary: g.IsPrimary,
		}
		if g.IsPrimary {
			row.IDProofType = g.IDProofType
			row.IDProofNumber = strings.TrimSpace(g.IDProofNumber)
			row.Address = strings.TrimSpace(g.Address)
			row.City = strings.TrimSpace(g.City)
			row.State = strings.TrimSpace(g.State)
			row.EmergencyContactName = strings.TrimSpace(g.EmergencyContactName)
			row.EmergencyContactNumber = strings.TrimSpace(g.EmergencyContactNumber)
		}
		rows = append(rows, row)
	}
	return rows
}

// ToHistoryRows snapshots a booking's guests at checkout. Money goes on the
// primary guest's row only.
func ToHistoryRows(booking models.Booking, bill billing.FinalBill, paymentMethod string) []models.GuestHistory {
	primary, _ := PrimaryGuest(booking.Guests)
	rows := make([]models.GuestHistory, 0, len(booking.Guests))
	for _, g := range booking.Guests {
		row := models.GuestHistory{
			BookingID:              booking.ID,
			RoomID:                 booking.RoomID,
			RoomNumber:             booking.Room.RoomNumber,
			Name:                   g.Name,
			Age:                    g.Age,
			Phone:                  g.Phone,
			Gender:                 g.Gender,
			IsPrimary:              g.ID == primary.ID,
			IDProofType:            g.IDProofType,
			IDProofNumber:          g.IDProofNumber,
			Address:                g.Address,
			City:                   g.City,
			State:                  g.State,
			EmergencyContactName:   g.EmergencyContactName,
			EmergencyContactNumber: g.EmergencyContactNumber,
			CheckinTime:            civiltime.ToCivil(booking.CheckinTime),
			CheckoutTime:           civiltime.ToCivil(bill.CheckoutAt),
			StayDays:               bill.ActualDays,
			PaymentMethod:          paymentMethod,
		}
		if row.IsPrimary {
			row.GrossTotal = bill.GrossTotal
			row.Discount = bill.Discount
			row.AdvancePayment = bill.AdvancePaid
			row.ExtraCharges = bill.ExtraCharges
		}
		rows = append(rows, row)
	}
	return rows
}
