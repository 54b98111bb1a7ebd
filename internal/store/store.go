package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// WithTx runs fn against a Store bound to a single transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error)
	GetRoom(ctx context.Context, id string) (model.Room, error)
	// UpdateRoom loads the room, lets mutate change it and writes every column back.
	UpdateRoom(ctx context.Context, id string, mutate func(*model.Room) error) (model.Room, error)
	DeleteRoom(ctx context.Context, id string) error
	CountRooms(ctx context.Context) (int64, error)

	CreateBooking(ctx context.Context, booking *model.Booking) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]model.Booking, error)
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	// SetBookingStatus moves a booking from one status to another only if it is
	// still in from. It returns whether a row changed.
	SetBookingStatus(ctx context.Context, id string, from, to model.BookingStatus, at time.Time) (bool, error)
	CreateBookingEvent(ctx context.Context, event *model.BookingStatusEvent) error
	ListBookingEvents(ctx context.Context, bookingID string) ([]model.BookingStatusEvent, error)

	CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)

	CreateAdmin(ctx context.Context, admin *model.AdminAccount) error
	GetAdminByEmail(ctx context.Context, email string) (model.AdminAccount, error)
	GetAdminByID(ctx context.Context, id string) (model.AdminAccount, error)
	CountAdmins(ctx context.Context) (int64, error)

	UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)

	// CreateSeedMarker inserts the named marker and reports whether it was new.
	CreateSeedMarker(ctx context.Context, name string, at time.Time) (bool, error)

	Stats(ctx context.Context) (Stats, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// notFound translates gorm's missing-row error into the caller-facing kind.
func notFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", entity, id, err)
}

const creationOrder = "created_at ASC, id ASC"
