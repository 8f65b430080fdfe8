package controllers

import (
	"net/http"

	"hotel-frontdesk/middleware"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type CheckinController struct {
	Checkin *services.CheckinService
	Drafts  *services.DraftService
}

func NewCheckinController(checkin *services.CheckinService, drafts *services.DraftService) *CheckinController {
	return &CheckinController{Checkin: checkin, Drafts: drafts}
}

// Quote handles POST /api/checkin/quote. Nothing is written.
func (cc *CheckinController) Quote(c *gin.Context) {
	var req services.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	quote, err := cc.Checkin.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

// CheckIn handles POST /api/checkin.
func (cc *CheckinController) CheckIn(c *gin.Context) {
	var req services.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := cc.Checkin.CheckIn(c.Request.Context(), middleware.OperatorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

func (cc *CheckinController) GetDraft(c *gin.Context) {
	draft, err := cc.Drafts.Load(c.Request.Context(), middleware.OperatorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, draft)
}

// SaveDraft handles PUT /api/checkin/draft. The payload is stored as sent,
// validation happens on the real check-in.
func (cc *CheckinController) SaveDraft(c *gin.Context) {
	var req services.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	draft, err := cc.Drafts.Save(c.Request.Context(), middleware.OperatorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, draft)
}

func (cc *CheckinController) DiscardDraft(c *gin.Context) {
	if err := cc.Drafts.Discard(c.Request.Context(), middleware.OperatorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
