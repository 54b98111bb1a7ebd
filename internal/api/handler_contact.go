package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/contact"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// CreateContactMessage handles POST /api/contact.
func (h *Handler) CreateContactMessage(c *gin.Context) {
	var req contactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	msg, err := h.contacts.Submit(c.Request.Context(), contact.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListContactMessages handles GET /api/contact.
func (h *Handler) ListContactMessages(c *gin.Context) {
	msgs, err := h.console.ListContactMessages(c.Request.Context(), credential(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
