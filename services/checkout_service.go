package services

import (
	"context"
	"errors"
	"fmt"

	"hotel-frontdesk/billing"
	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutRequest struct {
	ExtraCharges  float64 `json:"extra_charges"`
	PaymentMethod string  `json:"payment_method"`
}

type CheckoutPreview struct {
	Booking models.Booking    `json:"booking"`
	Bill    billing.FinalBill `json:"bill"`
}

type CheckoutResult struct {
	BookingID     uint                  `json:"booking_id"`
	RoomNumber    string                `json:"room_number"`
	PaymentMethod string                `json:"payment_method"`
	Bill          billing.FinalBill     `json:"bill"`
	History       []models.GuestHistory `json:"history"`
}

type CheckoutService struct {
	DB               *gorm.DB
	Clock            civiltime.Clock
	Audit            *AuditService
	GracePeriodHours float64
}

func NewCheckoutService(db *gorm.DB, clock civiltime.Clock, audit *AuditService, graceHours float64) *CheckoutService {
	return &CheckoutService{DB: db, Clock: clock, Audit: audit, GracePeriodHours: graceHours}
}

func (s *CheckoutService) billFor(booking models.Booking, extra float64) billing.FinalBill {
	primary, _ := PrimaryGuest(booking.Guests)
	return billing.ComputeFinalBill(billing.CheckoutInput{
		CheckinAt:        booking.CheckinTime,
		Now:              s.Clock.Now(),
		DailyRate:        booking.Room.BasePrice,
		GuestState:       primary.State,
		AdvancePaid:      booking.AdvancePayment,
		Discount:         booking.Discount,
		ExtraCharges:     extra,
		GracePeriodHours: s.GracePeriodHours,
		RoomType:         booking.Room.RoomType,
		GuestCount:       len(booking.Guests),
	})
}

// loadBooking tells a missing booking apart from one already checked out.
func loadBooking(tx *gorm.DB, id uint, lock bool) (models.Booking, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var booking models.Booking
	err := q.Preload("Guests", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Room").
		First(&booking, id).Error
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Booking{}, err
	}
	var archived int64
	if err := tx.Model(&models.GuestHistory{}).Where("booking_id = ?", id).Count(&archived).Error; err != nil {
		return models.Booking{}, err
	}
	if archived > 0 {
		return models.Booking{}, ErrAlreadyCheckedOut
	}
	return models.Booking{}, ErrBookingNotFound
}

// Preview is Bill plus a CHECKOUT_INITIATED audit entry.
func (s *CheckoutService) Preview(ctx context.Context, operatorID, bookingID uint, extraCharges float64) (CheckoutPreview, error) {
	preview, err := s.Bill(ctx, bookingID, extraCharges)
	if err != nil {
		return CheckoutPreview{}, err
	}
	s.Audit.Record(ctx, ActionCheckoutInitiated,
		fmt.Sprintf("Billing opened for room %s", preview.Booking.Room.RoomNumber), uintPtr(operatorID), uintPtr(bookingID))
	return preview, nil
}

// Bill computes the provisional bill without writing anything.
func (s *CheckoutService) Bill(ctx context.Context, bookingID uint, extraCharges float64) (CheckoutPreview, error) {
	if err := validateAmount("extra_charges", extraCharges); err != nil {
		return CheckoutPreview{}, err
	}
	booking, err := loadBooking(s.DB.WithContext(ctx), bookingID, false)
	if err != nil {
		return CheckoutPreview{}, err
	}
	return CheckoutPreview{Booking: booking, Bill: s.billFor(booking, extraCharges)}, nil
}

// Checkout archives the guests, frees the room and removes the booking in one transaction.
func (s *CheckoutService) Checkout(ctx context.Context, operatorID, bookingID uint, req CheckoutRequest) (CheckoutResult, error) {
	method, err := NormalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return CheckoutResult{}, err
	}
	if err := validateAmount("extra_charges", req.ExtraCharges); err != nil {
		return CheckoutResult{}, err
	}

	var result CheckoutResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, bookingID, true)
		if err != nil {
			return err
		}

		bill := s.billFor(booking, req.ExtraCharges)
		rows := ToHistoryRows(booking, bill, method)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("archive guests: %w", err)
			}
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomAvailable).Error; err != nil {
			return fmt.Errorf("free room: %w", err)
		}
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Guest{}).Error; err != nil {
			return fmt.Errorf("delete guests: %w", err)
		}
		if err := tx.Delete(&models.Booking{}, booking.ID).Error; err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}

		result = CheckoutResult{
			BookingID:     booking.ID,
			RoomNumber:    booking.Room.RoomNumber,
			PaymentMethod: method,
			Bill:          bill,
			History:       rows,
		}
		return nil
	})
	if err != nil {
		s.Audit.Record(ctx, ActionCheckoutFailed,
			fmt.Sprintf("Checkout of booking %d failed: %v", bookingID, err), uintPtr(operatorID), uintPtr(bookingID))
		return CheckoutResult{}, err
	}

	s.Audit.Record(ctx, ActionCheckoutCompleted,
		fmt.Sprintf("Room %s checked out after %d day(s), balance %.2f paid by %s",
			result.RoomNumber, result.Bill.ActualDays, result.Bill.BalanceDue, method),
		uintPtr(operatorID), uintPtr(bookingID))
	return result, nil
}

// RecordInvoiceDownload notes that an invoice left the building.
func (s *CheckoutService) RecordInvoiceDownload(ctx context.Context, operatorID, bookingID uint) {
	s.Audit.Record(ctx, ActionDownloadPDF,
		fmt.Sprintf("Invoice downloaded for booking %d", bookingID), uintPtr(operatorID), uintPtr(bookingID))
}
