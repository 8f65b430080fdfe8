package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-frontdesk/billing"
	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckinRequest is the full check-in form. It doubles as the draft payload.
type CheckinRequest struct {
	RoomID         uint        `json:"room_id"`
	Guests         []GuestForm `json:"guests"`
	StayDays       int         `json:"stay_days"`
	TillDate       string      `json:"till_date,omitempty"`
	Discount       float64     `json:"discount"`
	AdvancePayment float64     `json:"advance_payment"`
}

type CheckinQuote struct {
	Room      models.Room             `json:"room"`
	Stay      billing.Stay            `json:"stay"`
	Bill      billing.ProvisionalBill `json:"bill"`
	Occupancy billing.OccupancyCheck  `json:"occupancy"`
}

type CheckinResult struct {
	Booking   models.Booking          `json:"booking"`
	Bill      billing.ProvisionalBill `json:"bill"`
	Occupancy billing.OccupancyCheck  `json:"occupancy"`
}

type CheckinService struct {
	DB     *gorm.DB
	Clock  civiltime.Clock
	Audit  *AuditService
	Drafts *DraftService
}

func NewCheckinService(db *gorm.DB, clock civiltime.Clock, audit *AuditService, drafts *DraftService) *CheckinService {
	return &CheckinService{DB: db, Clock: clock, Audit: audit, Drafts: drafts}
}

// ParseClientTime accepts the datetime-local form value or RFC 3339.
func ParseClientTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := civiltime.ParseInput(s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return civiltime.ToCivil(t), nil
	}
	return civiltime.ParseStorage(s)
}

func stayRequest(days int, till string) (billing.StayRequest, error) {
	req := billing.StayRequest{Days: days}
	if days <= 0 && strings.TrimSpace(till) != "" {
		t, err := ParseClientTime(till)
		if err != nil {
			return req, invalid("till_date", "unrecognized date %q", till)
		}
		req.Checkout = &t
	}
	return req, nil
}

func (r CheckinRequest) normalize(checkin time.Time) ([]GuestForm, billing.Stay, error) {
	if r.RoomID == 0 {
		return nil, billing.Stay{}, invalid("room_id", "room is required")
	}
	guests, err := ValidateGuests(r.Guests)
	if err != nil {
		return nil, billing.Stay{}, err
	}
	if err := validateAmount("discount", r.Discount); err != nil {
		return nil, billing.Stay{}, err
	}
	if err := validateAmount("advance_payment", r.AdvancePayment); err != nil {
		return nil, billing.Stay{}, err
	}
	sr, err := stayRequest(r.StayDays, r.TillDate)
	if err != nil {
		return nil, billing.Stay{}, err
	}
	stay, err := billing.Reconcile(checkin, sr)
	if err != nil {
		return nil, billing.Stay{}, invalid("stay_days", "%s", err.Error())
	}
	return guests, stay, nil
}

// Quote prices a check-in without writing anything.
func (s *CheckinService) Quote(ctx context.Context, req CheckinRequest) (CheckinQuote, error) {
	now := s.Clock.Now()
	guests, stay, err := req.normalize(now)
	if err != nil {
		return CheckinQuote{}, err
	}
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckinQuote{}, ErrRoomNotFound
		}
		return CheckinQuote{}, err
	}
	bill := billing.ComputeProvisionalBill(billing.ProvisionalInput{
		DailyRate:  room.BasePrice,
		GuestState: GuestState(guests),
		StayDays:   stay.Days,
		Discount:   req.Discount,
	})
	return CheckinQuote{
		Room:      room,
		Stay:      stay,
		Bill:      bill,
		Occupancy: billing.CheckOccupancy(room.RoomType, len(guests)),
	}, nil
}

// CheckIn creates the booking and its guests and occupies the room in one transaction.
func (s *CheckinService) CheckIn(ctx context.Context, operatorID uint, req CheckinRequest) (CheckinResult, error) {
	now := s.Clock.Now()
	guests, stay, err := req.normalize(now)
	if err != nil {
		return CheckinResult{}, err
	}

	var result CheckinResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if !room.IsAvailable() {
			return ErrRoomNotAvailable
		}

		bill := billing.ComputeProvisionalBill(billing.ProvisionalInput{
			DailyRate:  room.BasePrice,
			GuestState: GuestState(guests),
			StayDays:   stay.Days,
			Discount:   req.Discount,
		})

		booking := ToBookingInsert(room, now, stay, bill, req.AdvancePayment)
		booking.OperatorID = uintPtr(operatorID)
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		rows := ToGuestInserts(booking.ID, room, guests)
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert guests: %w", err)
		}

		if err := tx.Model(&room).Update("status", models.RoomOccupied).Error; err != nil {
			return fmt.Errorf("occupy room: %w", err)
		}

		booking.Room = room
		booking.Guests = rows
		result = CheckinResult{
			Booking:   booking,
			Bill:      bill,
			Occupancy: billing.CheckOccupancy(room.RoomType, len(rows)),
		}
		return nil
	})
	if err != nil {
		s.Audit.Record(ctx, ActionCheckinFailed,
			fmt.Sprintf("Check-in for room %d failed: %v", req.RoomID, err), uintPtr(operatorID), nil)
		return CheckinResult{}, err
	}

	primary, _ := PrimaryGuest(result.Booking.Guests)
	s.Audit.Record(ctx, ActionCheckinCompleted,
		fmt.Sprintf("%s checked in to room %s for %d day(s)", primary.Name, result.Booking.Room.RoomNumber, result.Booking.StayDays),
		uintPtr(operatorID), uintPtr(result.Booking.ID))

	if s.Drafts != nil {
		if err := s.Drafts.Discard(ctx, operatorID); err != nil {
			s.Audit.Log.WarnContext(ctx, "failed to clear check-in draft", "operator_id", operatorID, "err", err)
		}
	}
	return result, nil
}
