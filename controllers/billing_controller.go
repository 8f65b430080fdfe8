package controllers

import (
	"net/http"
	"strings"

	"hotel-frontdesk/billing"
	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type gstPayload struct {
	State         string  `json:"state"`
	BaseDailyRate float64 `json:"base_daily_rate"`
}

type stayPayload struct {
	CheckinTime  string `json:"checkin_time"`
	StayDays     int    `json:"stay_days"`
	CheckoutTime string `json:"checkout_time"`
}

type stayResponse struct {
	CheckinTime  string `json:"checkin_time"`
	StayDays     int    `json:"stay_days"`
	CheckoutTime string `json:"checkout_time"`
}

// BillingController exposes the pure calculators so the form can show
// figures while the operator types.
type BillingController struct {
	Clock civiltime.Clock
}

func NewBillingController(clock civiltime.Clock) *BillingController {
	return &BillingController{Clock: clock}
}

// GST handles POST /api/billing/gst.
func (bc *BillingController) GST(c *gin.Context) {
	var p gstPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badPayload(c, err)
		return
	}
	if p.BaseDailyRate < 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", "base_daily_rate: must not be negative")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"state":       billing.NormalizeState(p.State),
		"intra_state": billing.IsIntraState(p.State),
		"gst":         billing.CalculateGST(p.State, p.BaseDailyRate),
	})
}

// Stay handles POST /api/billing/stay. Days win when both sides are sent.
func (bc *BillingController) Stay(c *gin.Context) {
	var p stayPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badPayload(c, err)
		return
	}

	checkin := bc.Clock.Now()
	if strings.TrimSpace(p.CheckinTime) != "" {
		t, err := services.ParseClientTime(p.CheckinTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.validation", "checkin_time: unrecognized date")
			return
		}
		checkin = t
	}

	req := billing.StayRequest{Days: p.StayDays}
	if p.StayDays <= 0 && strings.TrimSpace(p.CheckoutTime) != "" {
		t, err := services.ParseClientTime(p.CheckoutTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.validation", "checkout_time: unrecognized date")
			return
		}
		req.Checkout = &t
	}

	stay, err := billing.Reconcile(checkin, req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stayResponse{
		CheckinTime:  civiltime.FormatInput(checkin),
		StayDays:     stay.Days,
		CheckoutTime: civiltime.FormatInput(stay.Checkout),
	})
}
