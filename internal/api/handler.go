package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/auth"
	"hostel-booking-backend/internal/booking"
	"hostel-booking-backend/internal/contact"
	"hostel-booking-backend/internal/operator"
	"hostel-booking-backend/internal/query"
	"hostel-booking-backend/internal/seed"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	query          *query.Facade
	bookings       *booking.Workflow
	contacts       *contact.Log
	seeder         *seed.Seeder
	gate           *auth.Gate
	console        *operator.Console
	roomCache      *cache.Cache
	vapidPublicKey string
	log            *zap.Logger
}

// Deps bundles what NewHandler needs.
type Deps struct {
	Query    *query.Facade
	Bookings *booking.Workflow
	Contacts *contact.Log
	Seeder   *seed.Seeder
	Gate     *auth.Gate
	Console  *operator.Console
	// RoomCache backs the public room endpoints; it is flushed on every
	// change that can alter a room response.
	RoomCache      *cache.Cache
	VAPIDPublicKey string
	Log            *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		query:          d.Query,
		bookings:       d.Bookings,
		contacts:       d.Contacts,
		seeder:         d.Seeder,
		gate:           d.Gate,
		console:        d.Console,
		roomCache:      d.RoomCache,
		vapidPublicKey: d.VAPIDPublicKey,
		log:            d.Log,
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Kind   apperr.Kind       `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindRoomUnavailable, apperr.KindInvalidTransition:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Internal failures are logged and never described
// to the client.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, errorResponse{Error: "internal server error", Kind: apperr.KindInternal})
		return
	}

	resp := errorResponse{Error: err.Error(), Kind: kind}
	var e *apperr.Error
	if errors.As(err, &e) {
		resp.Error = e.Message
		resp.Fields = e.Fields
	}
	if kind == apperr.KindUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="hostel-admin"`)
	}
	c.AbortWithStatusJSON(status, resp)
}

func credential(c *gin.Context) auth.Credential {
	return auth.FromAuthorizationHeader(c.GetHeader("Authorization"))
}

// requireOperator rejects a request without a valid operator credential
// before its body is read. The console authorizes again per operation.
func (h *Handler) requireOperator(c *gin.Context) {
	if _, err := h.gate.Authorize(c.Request.Context(), credential(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Next()
}

func (h *Handler) flushRooms() {
	if h.roomCache != nil {
		h.roomCache.Flush()
	}
}

// Root answers GET /api/.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hostel Booking API"})
}

// Healthz answers liveness probes.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
