// Package app wires configuration, storage and services into an HTTP handler.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-booking-backend/config"
	"hostel-booking-backend/internal/api"
	"hostel-booking-backend/internal/auth"
	"hostel-booking-backend/internal/booking"
	"hostel-booking-backend/internal/contact"
	"hostel-booking-backend/internal/notification"
	"hostel-booking-backend/internal/operator"
	"hostel-booking-backend/internal/query"
	"hostel-booking-backend/internal/room"
	"hostel-booking-backend/internal/seed"
	"hostel-booking-backend/internal/store"
)

// Options override process-wide defaults, mainly for tests.
type Options struct {
	Now        func() time.Time
	BcryptCost int
}

// App is a fully wired server.
type App struct {
	Handler http.Handler
	workers *notification.WorkerPool
}

// New builds every service on top of gormDB.
func New(cfg *config.Config, gormDB *gorm.DB, log *zap.Logger, opts Options) (*App, error) {
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load booking timezone: %w", err)
	}
	s := store.NewGormStore(gormDB)

	var (
		workers  *notification.WorkerPool
		notifier booking.Notifier
	)
	if cfg.Push.Enabled() {
		workers = notification.NewWorkerPool(cfg.WorkerPool.Size, s, &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}, log.Named("notification"))
		notifier = workers
	} else {
		log.Warn("VAPID keys not configured; push notifications disabled")
	}

	gate := auth.NewGate(s, auth.Options{
		Secret:     []byte(cfg.Auth.JWTSecret),
		Issuer:     cfg.Auth.Issuer,
		TTL:        cfg.Auth.TokenTTL,
		Now:        opts.Now,
		BcryptCost: opts.BcryptCost,
	}, log.Named("auth"))
	rooms := room.NewRegistry(s, opts.Now, log.Named("room"))
	bookings := booking.NewWorkflow(s, booking.Options{
		Location:         loc,
		CapacityTracking: cfg.Booking.CapacityTracking,
		Now:              opts.Now,
		Notifier:         notifier,
	}, log.Named("booking"))
	contacts := contact.NewLog(s, opts.Now, log.Named("contact"))
	facade := query.NewFacade(rooms, s)
	seeder := seed.NewSeeder(s, seed.Admin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
	}, opts.BcryptCost, opts.Now, log.Named("seed"))

	console := operator.NewConsole(operator.Deps{
		Gate:          gate,
		Rooms:         rooms,
		Bookings:      bookings,
		Contacts:      contacts,
		Query:         facade,
		Subscriptions: s,
		Now:           opts.Now,
	})

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	handler := api.NewHandler(api.Deps{
		Query:          facade,
		Bookings:       bookings,
		Contacts:       contacts,
		Seeder:         seeder,
		Gate:           gate,
		Console:        console,
		RoomCache:      cache.New(cacheTTL, 2*cacheTTL),
		VAPIDPublicKey: cfg.Push.PublicKey,
		Log:            log.Named("api"),
	})
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitPerSec:      cfg.Server.RateLimitPerSec,
		RateLimitBurst:       cfg.Server.RateLimitBurst,
		WriteRateLimitPerMin: cfg.Server.WriteRateLimitPerMin,
		WriteRateLimitBurst:  cfg.Server.WriteRateLimitBurst,
		CacheTTL:             cacheTTL,
		CORSOrigins:          cfg.Server.CORSOrigins,
		TrustedProxies:       cfg.Server.TrustedProxies,
	}, log.Named("http"))

	return &App{Handler: router, workers: workers}, nil
}

// Start launches background workers. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.workers != nil {
		a.workers.Start(ctx)
	}
}
