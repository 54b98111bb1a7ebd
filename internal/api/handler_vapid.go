package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// vapidKindDisabled marks the push endpoints as switched off by configuration.
const vapidKindDisabled = "push_disabled"

// GetVAPIDPublicKey handles GET /api/vapid_public_key. Operator dashboards
// call it before subscribing a device.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	key := h.vapidPublicKey
	if key == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "push notifications are not enabled on this server",
			"kind":  vapidKindDisabled,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": key})
}
