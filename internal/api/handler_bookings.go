package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/booking"
	"hostel-booking-backend/internal/model"
)

// createBookingRequest mirrors the storefront form. Room name and type sent by
// older clients are accepted and ignored; the server snapshots its own copy.
type createBookingRequest struct {
	RoomID              string `json:"room_id"`
	FullName            string `json:"full_name"`
	PhoneNumber         string `json:"phone_number"`
	Email               string `json:"email"`
	School              string `json:"school"`
	PreferredMoveInDate string `json:"preferred_move_in_date"`
}

type setStatusRequest struct {
	Status model.BookingStatus `json:"status"`
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	b, err := h.bookings.Submit(c.Request.Context(), booking.SubmitInput{
		RoomID:              req.RoomID,
		FullName:            req.FullName,
		PhoneNumber:         req.PhoneNumber,
		Email:               req.Email,
		School:              req.School,
		PreferredMoveInDate: req.PreferredMoveInDate,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookings handles GET /api/bookings?status=.
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.console.ListBookings(c.Request.Context(), credential(c), booking.Filter{
		Status: model.BookingStatus(c.Query("status")),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// SetBookingStatus handles PUT /api/bookings/:id/status. The target comes from
// the JSON body or, for older clients, the status query parameter.
func (h *Handler) SetBookingStatus(c *gin.Context) {
	target := model.BookingStatus(c.Query("status"))
	if c.Request.ContentLength != 0 {
		var req setStatusRequest
		if !h.bindJSON(c, &req) {
			return
		}
		if req.Status != "" {
			target = req.Status
		}
	}

	b, err := h.console.SetBookingStatus(c.Request.Context(), credential(c), c.Param("id"), target)
	if err != nil {
		h.writeError(c, err)
		return
	}
	// Status counts and, with capacity tracking, room slots may have changed.
	h.flushRooms()
	c.JSON(http.StatusOK, b)
}

// BookingEvents handles GET /api/bookings/:id/events.
func (h *Handler) BookingEvents(c *gin.Context) {
	events, err := h.console.BookingEvents(c.Request.Context(), credential(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
