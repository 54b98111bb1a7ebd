package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/operator"
)

// putSubscriptionRequest accepts PushSubscription.toJSON() output as well as
// flattened keys.
type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256DH string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
	P256DH string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PutSubscription registers the caller's browser for new-booking notifications.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in := operator.PushSubscriptionInput{Endpoint: req.Endpoint, P256DH: req.Keys.P256DH, Auth: req.Keys.Auth}
	if in.P256DH == "" {
		in.P256DH = req.P256DH
	}
	if in.Auth == "" {
		in.Auth = req.Auth
	}

	if err := h.console.Subscribe(c.Request.Context(), credential(c), in); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.console.Unsubscribe(c.Request.Context(), credential(c), req.Endpoint); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
