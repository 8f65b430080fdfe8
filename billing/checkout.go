package billing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"hotel-frontdesk/civiltime"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidAmount  = errors.New("amount must be a finite number")
)

// ActualDays counts whole days elapsed since check-in. A leftover longer than
// graceHours is charged as another day. The result is at least 1, so a
// checkout at or before check-in still bills one day.
func ActualDays(checkin, now time.Time, graceHours float64) int {
	elapsed := now.Sub(checkin)
	if elapsed <= 0 {
		return 1
	}
	fullDays := int(elapsed / civiltime.Day)
	leftoverHours := float64(elapsed%civiltime.Day) / float64(time.Hour)

	days := fullDays
	if leftoverHours > graceHours {
		days++
	}
	if days < 1 {
		return 1
	}
	return days
}

type CheckoutInput struct {
	CheckinAt        time.Time
	Now              time.Time
	DailyRate        float64
	GuestState       string
	AdvancePaid      float64
	Discount         float64
	ExtraCharges     float64
	GracePeriodHours float64
	RoomType         string
	GuestCount       int
}

func (in CheckoutInput) Validate() error {
	amounts := []struct {
		name  string
		value float64
	}{
		{"dailyRate", in.DailyRate},
		{"advancePaid", in.AdvancePaid},
		{"discount", in.Discount},
		{"extraCharges", in.ExtraCharges},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return fmt.Errorf("%s: %w", a.name, ErrInvalidAmount)
		}
		if a.value < 0 {
			return fmt.Errorf("%s: %w", a.name, ErrNegativeAmount)
		}
	}
	return nil
}

// FinalBill is what the invoice renderer prints and what history rows snapshot.
type FinalBill struct {
	CheckinAt              time.Time      `json:"checkinAt"`
	CheckoutAt             time.Time      `json:"checkoutAt"`
	ActualDays             int            `json:"actualDays"`
	DailyRate              float64        `json:"dailyRate"`
	GST                    GST            `json:"gst"`
	RoomCharge             float64        `json:"roomCharge"`
	CGSTTotal              float64        `json:"cgstTotal"`
	SGSTTotal              float64        `json:"sgstTotal"`
	IGSTTotal              float64        `json:"igstTotal"`
	ExtraCharges           float64        `json:"extraCharges"`
	TotalBeforeAdjustments float64        `json:"totalBeforeAdjustments"`
	AdvancePaid            float64        `json:"advancePaid"`
	Discount               float64        `json:"discount"`
	BalanceDue             float64        `json:"balanceDue"`
	GrossTotal             float64        `json:"grossTotal"`
	Occupancy              OccupancyCheck `json:"occupancy"`
}

// TaxTotal is the GST charged across the whole stay.
func (b FinalBill) TaxTotal() float64 {
	return decimal.NewFromFloat(b.CGSTTotal).
		Add(decimal.NewFromFloat(b.SGSTTotal)).
		Add(decimal.NewFromFloat(b.IGSTTotal)).
		InexactFloat64()
}

// ComputeFinalBill derives the checkout bill. Callers validate amounts first;
// see CheckoutInput.Validate.
func ComputeFinalBill(in CheckoutInput) FinalBill {
	days := ActualDays(in.CheckinAt, in.Now, in.GracePeriodHours)
	d := decimal.NewFromInt(int64(days))

	rate := decimal.NewFromFloat(in.DailyRate)
	extra := decimal.NewFromFloat(in.ExtraCharges)
	advance := decimal.NewFromFloat(in.AdvancePaid)
	discount := decimal.NewFromFloat(in.Discount)

	split := calculateGST(in.GuestState, rate)
	roomCharge := rate.Mul(d)
	cgst := split.cgst.Mul(d)
	sgst := split.sgst.Mul(d)
	igst := split.igst.Mul(d)

	total := roomCharge.Add(cgst).Add(sgst).Add(igst).Add(extra)
	gross := total.Sub(discount)
	balance := decimal.Max(total.Sub(advance).Sub(discount), decimal.Zero)

	return FinalBill{
		CheckinAt:              in.CheckinAt,
		CheckoutAt:             in.Now,
		ActualDays:             days,
		DailyRate:              in.DailyRate,
		GST:                    split.float(),
		RoomCharge:             roomCharge.InexactFloat64(),
		CGSTTotal:              cgst.InexactFloat64(),
		SGSTTotal:              sgst.InexactFloat64(),
		IGSTTotal:              igst.InexactFloat64(),
		ExtraCharges:           extra.InexactFloat64(),
		TotalBeforeAdjustments: total.InexactFloat64(),
		AdvancePaid:            advance.InexactFloat64(),
		Discount:               discount.InexactFloat64(),
		BalanceDue:             balance.InexactFloat64(),
		GrossTotal:             gross.InexactFloat64(),
		Occupancy:              CheckOccupancy(in.RoomType, in.GuestCount),
	}
}

type ProvisionalInput struct {
	DailyRate  float64
	GuestState string
	StayDays   int
	Discount   float64
}

// ProvisionalBill is quoted and stored at check-in against the planned stay.
type ProvisionalBill struct {
	StayDays   int     `json:"stayDays"`
	DailyRate  float64 `json:"dailyRate"`
	GST        GST     `json:"gst"`
	RoomCharge float64 `json:"roomCharge"`
	GSTPerDay  float64 `json:"gstPerDay"`
	GSTTotal   float64 `json:"gstTotal"`
	Discount   float64 `json:"discount"`
	GrossTotal float64 `json:"grossTotal"`
}

func ComputeProvisionalBill(in ProvisionalInput) ProvisionalBill {
	days := in.StayDays
	if days < 1 {
		days = 1
	}
	d := decimal.NewFromInt(int64(days))
	rate := decimal.NewFromFloat(in.DailyRate)
	discount := decimal.NewFromFloat(in.Discount)

	split := calculateGST(in.GuestState, rate)
	roomCharge := rate.Mul(d)
	gstTotal := split.total().Mul(d)

	return ProvisionalBill{
		StayDays:   days,
		DailyRate:  in.DailyRate,
		GST:        split.float(),
		RoomCharge: roomCharge.InexactFloat64(),
		GSTPerDay:  split.total().InexactFloat64(),
		GSTTotal:   gstTotal.InexactFloat64(),
		Discount:   discount.InexactFloat64(),
		GrossTotal: roomCharge.Add(gstTotal).Sub(discount).InexactFloat64(),
	}
}
