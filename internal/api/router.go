package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hostel-booking-backend/internal/mw"
)

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	// RateLimitPerSec and RateLimitBurst apply to every /api request per
	// client IP. A zero rate disables the limit.
	RateLimitPerSec float64
	RateLimitBurst  int
	// WriteRateLimitPerMin and WriteRateLimitBurst additionally apply to
	// unauthenticated submissions.
	WriteRateLimitPerMin float64
	WriteRateLimitBurst  int
	CacheTTL             time.Duration
	CORSOrigins          []string
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// decide the client IP. Empty trusts none and uses the peer address.
	TrustedProxies []string
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error("invalid trusted proxies; trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(mw.RequestLogger(log), mw.Recovery(log), mw.CORS(cfg.CORSOrigins))

	if h.roomCache == nil {
		h.roomCache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	caching := mw.Cache(h.roomCache, cfg.CacheTTL)
	writeLimit := limiter(cfg.WriteRateLimitPerMin/60, cfg.WriteRateLimitBurst)

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.Use(limiter(cfg.RateLimitPerSec, cfg.RateLimitBurst))
	{
		api.GET("/", h.Root)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		api.GET("/rooms", caching, h.ListRooms)
		api.GET("/rooms/:id", caching, h.GetRoom)
		api.POST("/bookings", writeLimit, h.CreateBooking)
		api.POST("/contact", writeLimit, h.CreateContactMessage)
		api.POST("/seed", writeLimit, h.Seed)
		api.POST("/admin/login", writeLimit, h.Login)
	}

	operator := api.Group("", h.requireOperator)
	{
		operator.POST("/rooms", h.CreateRoom)
		operator.PUT("/rooms/:id", h.UpdateRoom)
		operator.DELETE("/rooms/:id", h.DeleteRoom)

		operator.GET("/bookings", h.ListBookings)
		operator.PUT("/bookings/:id/status", h.SetBookingStatus)
		operator.GET("/bookings/:id/events", h.BookingEvents)

		operator.GET("/contact", h.ListContactMessages)
		operator.GET("/stats", h.Stats)

		admin := operator.Group("/admin")
		admin.GET("/me", h.Me)
		admin.POST("/register", h.Register)
		admin.PUT("/push-subscriptions", h.PutSubscription)
		admin.DELETE("/push-subscriptions", h.DeleteSubscription)
	}

	return r
}

func limiter(perSec float64, burst int) gin.HandlerFunc {
	if perSec <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return mw.RateLimiter(rate.Limit(perSec), burst)
}
