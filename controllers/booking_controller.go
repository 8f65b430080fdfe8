// controllers/booking_controller.go
package controllers

import (
	"math"
	"net/http"
	"strconv"

	"hotel-frontdesk/middleware"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	Checkout *services.CheckoutService
	Settings *services.SettingsService
}

func NewBookingController(bookings *services.BookingService, checkout *services.CheckoutService, settings *services.SettingsService) *BookingController {
	return &BookingController{Bookings: bookings, Checkout: checkout, Settings: settings}
}

// extraCharges reads ?extra_charges=, answering 400 itself when malformed.
func extraCharges(c *gin.Context) (float64, bool) {
	raw := c.Query("extra_charges")
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", "extra_charges must be a non-negative number")
		return 0, false
	}
	return v, true
}

// List handles GET /api/bookings, the in-house board.
func (bc *BookingController) List(c *gin.Context) {
	list, err := bc.Bookings.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (bc *BookingController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// Update handles PUT /api/bookings/:id.
func (bc *BookingController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var u services.BookingUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badPayload(c, err)
		return
	}
	res, err := bc.Bookings.Update(c.Request.Context(), middleware.OperatorID(c), id, u)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// Bill handles GET /api/bookings/:id/bill, the checkout preview.
func (bc *BookingController) Bill(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	extra, ok := extraCharges(c)
	if !ok {
		return
	}
	preview, err := bc.Checkout.Preview(c.Request.Context(), middleware.OperatorID(c), id, extra)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, preview)
}

// Invoice handles GET /api/bookings/:id/invoice: the preview plus the letterhead.
func (bc *BookingController) Invoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	extra, ok := extraCharges(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	preview, err := bc.Checkout.Bill(ctx, id, extra)
	if err != nil {
		respondError(c, err)
		return
	}
	hotel, err := bc.Settings.Hotel(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hotel":   hotel,
		"booking": preview.Booking,
		"bill":    preview.Bill,
	})
}

// CheckoutBooking handles POST /api/bookings/:id/checkout.
func (bc *BookingController) CheckoutBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := bc.Checkout.Checkout(c.Request.Context(), middleware.OperatorID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

func (bc *BookingController) InvoiceDownloaded(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	bc.Checkout.RecordInvoiceDownload(c.Request.Context(), middleware.OperatorID(c), id)
	c.Status(http.StatusNoContent)
}
