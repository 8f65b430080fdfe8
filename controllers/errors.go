package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrBookingNotFound, http.StatusNotFound, "error.bookingNotFound"},
	{services.ErrRoomNotFound, http.StatusNotFound, "error.roomNotFound"},
	{services.ErrDraftNotFound, http.StatusNotFound, "error.draftNotFound"},
	{services.ErrHistoryNotFound, http.StatusNotFound, "error.historyNotFound"},
	{services.ErrRoomNotAvailable, http.StatusConflict, "error.roomNotAvailable"},
	{services.ErrRoomOccupied, http.StatusConflict, "error.roomOccupied"},
	{services.ErrDuplicateRoom, http.StatusConflict, "error.duplicateRoom"},
	{services.ErrAlreadyCheckedOut, http.StatusConflict, "error.alreadyCheckedOut"},
	{services.ErrInvalidCredential, http.StatusUnauthorized, "error.invalidCredentials"},
	{services.ErrInvalidToken, http.StatusUnauthorized, "error.invalidToken"},
}

// respondError maps service errors onto the API's status codes. Anything
// unrecognized is a 500 and is attached to the context for the request log.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", ve.Error())
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			utils.JSONError(c, e.status, e.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
}

func badPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
}

// idParam reads a positive numeric :id, answering 400 itself when it is not.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "id must be a positive number")
		return 0, false
	}
	return uint(id), true
}
