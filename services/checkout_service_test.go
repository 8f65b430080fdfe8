package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"hotel-frontdesk/models"
)

func TestCheckinAndCheckoutEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "201", "Double", 1000)

	drafts := NewDraftService(f.db, f.clock, time.Hour)
	checkin := NewCheckinService(f.db, f.clock, f.audit, drafts)
	checkout := NewCheckoutService(f.db, f.clock, f.audit, 0)

	req := CheckinRequest{
		RoomID:         room.ID,
		Guests:         []GuestForm{primaryForm("Karnataka"), companionForm(2, "Kiran")},
		StayDays:       3,
		Discount:       100,
		AdvancePayment: 500,
	}
	if _, err := drafts.Save(ctx, 7, req); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	quote, err := checkin.Quote(ctx, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.Bill.GrossTotal != 3050 {
		t.Errorf("expected quoted gross 3050, got %v", quote.Bill.GrossTotal)
	}
	if f.count(t, &models.Booking{}) != 0 {
		t.Fatal("Quote wrote a booking")
	}

	res, err := checkin.CheckIn(ctx, 7, req)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.Booking.GrossTotal != 3050 || res.Booking.RoomCharge != 3000 || res.Booking.StayDays != 3 {
		t.Errorf("unexpected booking %+v", res.Booking)
	}
	if !res.Booking.CheckoutTime.Equal(testCheckin.AddDate(0, 0, 3)) {
		t.Errorf("unexpected planned checkout %v", res.Booking.CheckoutTime)
	}

	var stored models.Room
	f.db.First(&stored, room.ID)
	if stored.Status != models.RoomOccupied {
		t.Errorf("expected room occupied, got %s", stored.Status)
	}
	if n := f.count(t, &models.Guest{}, "booking_id = ?", res.Booking.ID); n != 2 {
		t.Errorf("expected 2 guests, got %d", n)
	}
	if _, err := drafts.Load(ctx, 7); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected draft cleared after check-in, got %v", err)
	}

	t.Run("PreviewDoesNotWrite", func(t *testing.T) {
		f.clock.Set(testCheckin.Add(50 * time.Hour))
		p, err := checkout.Preview(ctx, 7, res.Booking.ID, 0)
		if err != nil {
			t.Fatalf("Preview: %v", err)
		}
		if p.Bill.ActualDays != 3 {
			t.Errorf("expected 3 started days, got %d", p.Bill.ActualDays)
		}
		if f.count(t, &models.GuestHistory{}) != 0 {
			t.Error("Preview archived guests")
		}
	})

	t.Run("RequiresPaymentMethod", func(t *testing.T) {
		_, err := checkout.Checkout(ctx, 7, res.Booking.ID, CheckoutRequest{})
		if !IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	f.clock.Set(testCheckin.Add(72 * time.Hour))
	out, err := checkout.Checkout(ctx, 7, res.Booking.ID, CheckoutRequest{PaymentMethod: "upi"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if out.Bill.ActualDays != 3 || out.Bill.BalanceDue != 2550 || out.Bill.GrossTotal != 3050 {
		t.Errorf("unexpected bill %+v", out.Bill)
	}
	if out.PaymentMethod != "UPI" || out.RoomNumber != "201" {
		t.Errorf("unexpected result %+v", out)
	}

	var history []models.GuestHistory
	f.db.Order("id ASC").Find(&history)
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	if !history[0].IsPrimary || history[0].GrossTotal != 3050 || history[0].AdvancePayment != 500 {
		t.Errorf("unexpected primary history %+v", history[0])
	}
	if history[1].GrossTotal != 0 || history[1].Discount != 0 {
		t.Errorf("companion history carries money %+v", history[1])
	}

	f.db.First(&stored, room.ID)
	if stored.Status != models.RoomAvailable {
		t.Errorf("expected room available, got %s", stored.Status)
	}
	if f.count(t, &models.Booking{}) != 0 || f.count(t, &models.Guest{}) != 0 {
		t.Error("booking or guests left behind")
	}

	if _, err := checkout.Checkout(ctx, 7, res.Booking.ID, CheckoutRequest{PaymentMethod: "Cash"}); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Errorf("expected ErrAlreadyCheckedOut, got %v", err)
	}
	if f.count(t, &models.GuestHistory{}) != 2 {
		t.Error("repeated checkout wrote history")
	}

	actions := f.actions(t)
	for _, want := range []string{ActionCheckinCompleted, ActionCheckoutInitiated, ActionCheckoutCompleted, ActionCheckoutFailed} {
		if !contains(actions, want) {
			t.Errorf("missing audit action %q in %v", want, actions)
		}
	}
}

func TestCheckinRejectsOccupiedRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "Ordinary", 1000)
	f.db.Model(&room).Update("status", models.RoomOccupied)

	svc := NewCheckinService(f.db, f.clock, f.audit, nil)
	_, err := svc.CheckIn(ctx, 1, CheckinRequest{RoomID: room.ID, Guests: []GuestForm{primaryForm("Goa")}, StayDays: 1})
	if !errors.Is(err, ErrRoomNotAvailable) {
		t.Fatalf("expected ErrRoomNotAvailable, got %v", err)
	}
	if f.count(t, &models.Booking{}) != 0 || f.count(t, &models.Guest{}) != 0 {
		t.Error("failed check-in left rows behind")
	}
	if !contains(f.actions(t), ActionCheckinFailed) {
		t.Error("expected CHECKIN_FAILED audit entry")
	}
}

func TestCheckinValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "101", "Ordinary", 1000)
	svc := NewCheckinService(f.db, f.clock, f.audit, nil)

	cases := map[string]CheckinRequest{
		"no room":        {Guests: []GuestForm{primaryForm("Goa")}, StayDays: 1},
		"no stay":        {RoomID: room.ID, Guests: []GuestForm{primaryForm("Goa")}},
		"bad till date":  {RoomID: room.ID, Guests: []GuestForm{primaryForm("Goa")}, TillDate: "soon"},
		"negative money": {RoomID: room.ID, Guests: []GuestForm{primaryForm("Goa")}, StayDays: 1, Discount: -5},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.CheckIn(ctx, 1, req); !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if f.count(t, &models.Booking{}) != 0 {
		t.Error("invalid check-in wrote a booking")
	}

	t.Run("TillDateSetsDays", func(t *testing.T) {
		res, err := svc.CheckIn(ctx, 1, CheckinRequest{
			RoomID: room.ID, Guests: []GuestForm{primaryForm("Goa")}, TillDate: "2024-01-03T09:00",
		})
		if err != nil {
			t.Fatalf("CheckIn: %v", err)
		}
		if res.Booking.StayDays != 2 || res.Bill.GST.IGST != 50 {
			t.Errorf("unexpected result %+v", res)
		}
	})
}

func TestCheckoutUnknownBooking(t *testing.T) {
	f := newFixture(t)
	svc := NewCheckoutService(f.db, f.clock, f.audit, 0)
	_, err := svc.Checkout(context.Background(), 1, 404, CheckoutRequest{PaymentMethod: "Cash"})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCheckoutGracePeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "102", "Single", 1000)
	res, err := NewCheckinService(f.db, f.clock, f.audit, nil).CheckIn(ctx, 1, CheckinRequest{
		RoomID: room.ID, Guests: []GuestForm{primaryForm("Maharashtra")}, StayDays: 1,
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	f.clock.Set(testCheckin.Add(25 * time.Hour))
	strict, _ := NewCheckoutService(f.db, f.clock, f.audit, 0).Preview(ctx, 1, res.Booking.ID, 0)
	lenient, _ := NewCheckoutService(f.db, f.clock, f.audit, 2).Preview(ctx, 1, res.Booking.ID, 0)
	if strict.Bill.ActualDays != 2 || lenient.Bill.ActualDays != 1 {
		t.Errorf("expected 2 and 1 days, got %d and %d", strict.Bill.ActualDays, lenient.Bill.ActualDays)
	}
	if strict.Bill.IGSTTotal != 100 {
		t.Errorf("expected inter-state tax 100, got %v", strict.Bill.IGSTTotal)
	}
}

func TestPreviewRejectsNonFiniteExtras(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "301", "Single", 900)
	checkin := NewCheckinService(f.db, f.clock, f.audit, nil)
	checkout := NewCheckoutService(f.db, f.clock, f.audit, 0)

	res, err := checkin.CheckIn(ctx, 1, CheckinRequest{RoomID: room.ID, Guests: []GuestForm{primaryForm("Karnataka")}, StayDays: 1})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	before := len(f.actions(t))

	for _, extra := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := checkout.Preview(ctx, 1, res.Booking.ID, extra); !IsValidation(err) {
			t.Errorf("Preview(%v): expected validation error, got %v", extra, err)
		}
		if _, err := checkout.Bill(ctx, res.Booking.ID, extra); !IsValidation(err) {
			t.Errorf("Bill(%v): expected validation error, got %v", extra, err)
		}
		_, err := checkout.Checkout(ctx, 1, res.Booking.ID, CheckoutRequest{PaymentMethod: "Cash", ExtraCharges: extra})
		if !IsValidation(err) {
			t.Errorf("Checkout(%v): expected validation error, got %v", extra, err)
		}
	}
	if got := len(f.actions(t)); got != before {
		t.Errorf("rejected previews were audited: %v", f.actions(t)[before:])
	}
	if f.count(t, &models.Booking{}) != 1 {
		t.Error("rejected checkout removed the booking")
	}
}

func TestBillDoesNotAudit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, "302", "Single", 900)
	checkin := NewCheckinService(f.db, f.clock, f.audit, nil)
	checkout := NewCheckoutService(f.db, f.clock, f.audit, 0)

	res, err := checkin.CheckIn(ctx, 1, CheckinRequest{RoomID: room.ID, Guests: []GuestForm{primaryForm("Karnataka")}, StayDays: 1})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	initiated := func() int64 {
		return f.count(t, &models.SystemLog{}, "action = ?", ActionCheckoutInitiated)
	}

	for i := 0; i < 3; i++ {
		if _, err := checkout.Bill(ctx, res.Booking.ID, 50); err != nil {
			t.Fatalf("Bill: %v", err)
		}
	}
	if n := initiated(); n != 0 {
		t.Errorf("expected no %s entries from Bill, got %d", ActionCheckoutInitiated, n)
	}

	if _, err := checkout.Preview(ctx, 1, 999, 0); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
	if n := initiated(); n != 0 {
		t.Errorf("failed preview was audited %d times", n)
	}

	if _, err := checkout.Preview(ctx, 1, res.Booking.ID, 0); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if n := initiated(); n != 1 {
		t.Errorf("expected one %s entry, got %d", ActionCheckoutInitiated, n)
	}
}
