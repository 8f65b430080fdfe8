// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-frontdesk/billing"
	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService reads and edits stays that are still in house.
type BookingService struct {
	DB    *gorm.DB
	Clock civiltime.Clock
	Audit *AuditService
}

func NewBookingService(db *gorm.DB, clock civiltime.Clock, audit *AuditService) *BookingService {
	return &BookingService{DB: db, Clock: clock, Audit: audit}
}

// ActiveBooking is one row of the in-house list.
type ActiveBooking struct {
	ID             uint    `json:"id"`
	RoomID         uint    `json:"room_id"`
	RoomNumber     string  `json:"room_number"`
	RoomType       string  `json:"room_type"`
	PrimaryGuest   string  `json:"primary_guest"`
	Phone          string  `json:"phone"`
	GuestCount     int     `json:"guest_count"`
	CheckinTime    string  `json:"checkin_time"`
	CheckoutTime   string  `json:"checkout_time"`
	StayDays       int     `json:"stay_days"`
	GrossTotal     float64 `json:"gross_total"`
	AdvancePayment float64 `json:"advance_payment"`
	Overdue        bool    `json:"overdue"`
}

// BookingUpdate changes an in-house stay. Nil or zero fields are left alone.
// Guests, when present, replaces every non-primary guest.
type BookingUpdate struct {
	StayDays       int         `json:"stay_days"`
	CheckoutTime   string      `json:"checkout_time"`
	RoomID         *uint       `json:"room_id"`
	AdvancePayment *float64    `json:"advance_payment"`
	Guests         []GuestForm `json:"guests"`
}

type BookingEditResult struct {
	Booking   models.Booking          `json:"booking"`
	Bill      billing.ProvisionalBill `json:"bill"`
	Occupancy billing.OccupancyCheck  `json:"occupancy"`
}

func (s *BookingService) ListActive(ctx context.Context) ([]ActiveBooking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Preload("Guests", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("checkin_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	out := make([]ActiveBooking, 0, len(bookings))
	for _, b := range bookings {
		primary, _ := PrimaryGuest(b.Guests)
		out = append(out, ActiveBooking{
			ID:             b.ID,
			RoomID:         b.RoomID,
			RoomNumber:     b.Room.RoomNumber,
			RoomType:       b.Room.RoomType,
			PrimaryGuest:   primary.Name,
			Phone:          primary.Phone,
			GuestCount:     len(b.Guests),
			CheckinTime:    civiltime.FormatDisplay(b.CheckinTime),
			CheckoutTime:   civiltime.FormatDisplay(b.CheckoutTime),
			StayDays:       b.StayDays,
			GrossTotal:     b.GrossTotal,
			AdvancePayment: b.AdvancePayment,
			Overdue:        now.After(b.CheckoutTime),
		})
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (models.Booking, error) {
	return loadBooking(s.DB.WithContext(ctx), id, false)
}

func (u BookingUpdate) validate() ([]GuestForm, error) {
	if u.AdvancePayment != nil {
		if err := validateAmount("advance_payment", *u.AdvancePayment); err != nil {
			return nil, err
		}
	}
	if u.StayDays < 0 {
		return nil, invalid("stay_days", "must be at least 1")
	}
	if u.Guests == nil {
		return nil, nil
	}
	extra := make([]GuestForm, len(u.Guests))
	for i, g := range u.Guests {
		g.IsPrimary = false
		if err := validateGuest(i, g); err != nil {
			return nil, err
		}
		extra[i] = g
	}
	return extra, nil
}

// Update applies an edit in one transaction and reprices the stay.
func (s *BookingService) Update(ctx context.Context, operatorID, id uint, u BookingUpdate) (BookingEditResult, error) {
	extraGuests, err := u.validate()
	if err != nil {
		return BookingEditResult{}, err
	}

	var result BookingEditResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, id, true)
		if err != nil {
			return err
		}

		stay := billing.Stay{Days: booking.StayDays, Checkout: booking.CheckoutTime}
		if u.StayDays > 0 || strings.TrimSpace(u.CheckoutTime) != "" {
			sr, err := stayRequest(u.StayDays, u.CheckoutTime)
			if err != nil {
				return err
			}
			if stay, err = billing.Reconcile(booking.CheckinTime, sr); err != nil {
				return invalid("stay_days", "%s", err.Error())
			}
		}

		room := booking.Room
		if u.RoomID != nil && *u.RoomID != booking.RoomID {
			var next models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&next, *u.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}
			if !next.IsAvailable() {
				return ErrRoomNotAvailable
			}
			if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return fmt.Errorf("release room: %w", err)
			}
			if err := tx.Model(&next).Update("status", models.RoomOccupied).Error; err != nil {
				return fmt.Errorf("occupy room: %w", err)
			}
			if err := tx.Model(&models.Guest{}).Where("booking_id = ?", booking.ID).
				Update("room_id", next.ID).Error; err != nil {
				return fmt.Errorf("move guests: %w", err)
			}
			next.Status = models.RoomOccupied
			room = next
		}

		advance := booking.AdvancePayment
		if u.AdvancePayment != nil {
			advance = *u.AdvancePayment
		}

		if extraGuests != nil {
			if err := tx.Where("booking_id = ? AND is_primary = ?", booking.ID, false).
				Delete(&models.Guest{}).Error; err != nil {
				return fmt.Errorf("remove guests: %w", err)
			}
			if len(extraGuests) > 0 {
				rows := ToGuestInserts(booking.ID, room, extraGuests)
				if err := tx.Create(&rows).Error; err != nil {
					return fmt.Errorf("insert guests: %w", err)
				}
			}
		}

		var guests []models.Guest
		if err := tx.Where("booking_id = ?", booking.ID).Order("id ASC").Find(&guests).Error; err != nil {
			return err
		}
		primary, _ := PrimaryGuest(guests)

		bill := billing.ComputeProvisionalBill(billing.ProvisionalInput{
			DailyRate:  room.BasePrice,
			GuestState: primary.State,
			StayDays:   stay.Days,
			Discount:   booking.Discount,
		})
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"room_id":         room.ID,
			"stay_days":       stay.Days,
			"checkout_time":   civiltime.ToCivil(stay.Checkout),
			"advance_payment": advance,
			"room_charge":     bill.RoomCharge,
			"gross_total":     bill.GrossTotal,
		}).Error; err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		booking.RoomID = room.ID
		booking.Room = room
		booking.StayDays = stay.Days
		booking.CheckoutTime = civiltime.ToCivil(stay.Checkout)
		booking.AdvancePayment = advance
		booking.RoomCharge = bill.RoomCharge
		booking.GrossTotal = bill.GrossTotal
		booking.Guests = guests

		result = BookingEditResult{
			Booking:   booking,
			Bill:      bill,
			Occupancy: billing.CheckOccupancy(room.RoomType, len(guests)),
		}
		return nil
	})
	if err != nil {
		s.Audit.Record(ctx, ActionEditFailed,
			fmt.Sprintf("Edit of booking %d failed: %v", id, err), uintPtr(operatorID), uintPtr(id))
		return BookingEditResult{}, err
	}

	s.Audit.Record(ctx, ActionEditSuccessful,
		fmt.Sprintf("Booking %d updated: room %s, %d day(s), advance %.2f",
			id, result.Booking.Room.RoomNumber, result.Booking.StayDays, result.Booking.AdvancePayment),
		uintPtr(operatorID), uintPtr(id))
	return result, nil
}
