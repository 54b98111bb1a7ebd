package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tok, err := h.gate.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

// Me handles GET /api/admin/me.
func (h *Handler) Me(c *gin.Context) {
	p, err := h.console.Whoami(c.Request.Context(), credential(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Register handles POST /api/admin/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	acct, err := h.console.Register(c.Request.Context(), credential(c), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.console.Stats(c.Request.Context(), credential(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Seed handles POST /api/seed.
func (h *Handler) Seed(c *gin.Context) {
	res, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	msg := "Data already seeded"
	if res.Seeded {
		h.flushRooms()
		msg = "Data seeded successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       msg,
		"seeded":        res.Seeded,
		"rooms_created": res.RoomsCreated,
		"admin_created": res.AdminCreated,
	})
}
