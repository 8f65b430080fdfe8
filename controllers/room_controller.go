package controllers

import (
	"net/http"

	"hotel-frontdesk/middleware"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

// List handles GET /api/rooms?room_type=&floor=&status=
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Rooms.List(c.Request.Context(), services.RoomFilter{
		RoomType: c.Query("room_type"),
		Floor:    c.Query("floor"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) Types(c *gin.Context) {
	types, err := rc.Rooms.Types(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (rc *RoomController) Create(c *gin.Context) {
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}
	room, err := rc.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}
	room, err := rc.Rooms.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// Select handles POST /api/rooms/:id/select, the first step of a check-in.
func (rc *RoomController) Select(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.Select(c.Request.Context(), id, middleware.OperatorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
