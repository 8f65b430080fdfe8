package billing

import (
	"errors"
	"time"

	"hotel-frontdesk/civiltime"
)

var ErrStayUnspecified = errors.New("either stay days or checkout date is required")

// DaysFromCheckout is the planned stay length for a checkout date.
func DaysFromCheckout(checkout, checkin time.Time) int {
	return civiltime.DaysBetween(checkout, checkin)
}

// CheckoutFromDays is the planned checkout for a stay length. Days below 1 count as 1.
func CheckoutFromDays(checkin time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return civiltime.AddDays(checkin, days)
}

// StayRequest carries whichever of the two fields the operator touched.
// Days wins when both are set.
type StayRequest struct {
	Days     int        `json:"stayDays"`
	Checkout *time.Time `json:"checkoutTime,omitempty"`
}

type Stay struct {
	Days     int       `json:"stayDays"`
	Checkout time.Time `json:"checkoutTime"`
}

// Reconcile resolves a StayRequest into a consistent days/checkout pair.
func Reconcile(checkin time.Time, req StayRequest) (Stay, error) {
	switch {
	case req.Days > 0:
		return Stay{Days: req.Days, Checkout: CheckoutFromDays(checkin, req.Days)}, nil
	case req.Checkout != nil && !req.Checkout.IsZero():
		days := DaysFromCheckout(*req.Checkout, checkin)
		return Stay{Days: days, Checkout: CheckoutFromDays(checkin, days)}, nil
	default:
		return Stay{}, ErrStayUnspecified
	}
}
