package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/room"
)

type createRoomRequest struct {
	Name               string                   `json:"name" binding:"required"`
	RoomType           model.RoomType           `json:"room_type" binding:"required"`
	Price              *float64                 `json:"price" binding:"required"`
	SecurityDeposit    *float64                 `json:"security_deposit"`
	Description        string                   `json:"description"`
	Amenities          []string                 `json:"amenities"`
	Images             []string                 `json:"images"`
	AvailabilityStatus model.AvailabilityStatus `json:"availability_status"`
	TotalSlots         *int                     `json:"total_slots"`
	AvailableSlots     *int                     `json:"available_slots"`
}

type updateRoomRequest struct {
	Name               *string                   `json:"name"`
	RoomType           *model.RoomType           `json:"room_type"`
	Price              *float64                  `json:"price"`
	SecurityDeposit    *float64                  `json:"security_deposit"`
	Description        *string                   `json:"description"`
	Amenities          *[]string                 `json:"amenities"`
	Images             *[]string                 `json:"images"`
	AvailabilityStatus *model.AvailabilityStatus `json:"availability_status"`
	TotalSlots         *int                      `json:"total_slots"`
	AvailableSlots     *int                      `json:"available_slots"`
}

// ListRooms handles GET /api/rooms?room_type=&availability=.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.query.ListRooms(c.Request.Context(),
		model.RoomType(c.Query("room_type")),
		model.AvailabilityStatus(c.Query("availability")),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	r, err := h.query.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if !h.bindJSON(c, &req) {
		return
	}
	r, err := h.console.CreateRoom(c.Request.Context(), credential(c), room.CreateInput{
		Name:               req.Name,
		RoomType:           req.RoomType,
		Price:              *req.Price,
		SecurityDeposit:    req.SecurityDeposit,
		Description:        req.Description,
		Amenities:          req.Amenities,
		Images:             req.Images,
		AvailabilityStatus: req.AvailabilityStatus,
		TotalSlots:         req.TotalSlots,
		AvailableSlots:     req.AvailableSlots,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.flushRooms()
	c.JSON(http.StatusCreated, r)
}

// UpdateRoom handles PUT /api/rooms/:id. Absent fields are left unchanged.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if !h.bindJSON(c, &req) {
		return
	}
	r, err := h.console.UpdateRoom(c.Request.Context(), credential(c), c.Param("id"), room.Patch{
		Name:               req.Name,
		RoomType:           req.RoomType,
		Price:              req.Price,
		SecurityDeposit:    req.SecurityDeposit,
		Description:        req.Description,
		Amenities:          req.Amenities,
		Images:             req.Images,
		AvailabilityStatus: req.AvailabilityStatus,
		TotalSlots:         req.TotalSlots,
		AvailableSlots:     req.AvailableSlots,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.flushRooms()
	c.JSON(http.StatusOK, r)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id := c.Param("id")
	if err := h.console.DeleteRoom(c.Request.Context(), credential(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	h.flushRooms()
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted", "id": id})
}
