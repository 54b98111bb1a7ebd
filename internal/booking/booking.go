// Package booking accepts public booking requests and moves them through
// pending -> confirmed | cancelled.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/parse"
	"hostel-booking-backend/internal/store"
)

type bookingStore interface {
	WithTx(ctx context.Context, fn func(tx store.Store) error) error
	GetRoom(ctx context.Context, id string) (model.Room, error)
	CreateBooking(ctx context.Context, booking *model.Booking) error
	ListBookings(ctx context.Context, filter store.BookingFilter) ([]model.Booking, error)
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	ListBookingEvents(ctx context.Context, bookingID string) ([]model.BookingStatusEvent, error)
}

// Notifier is told about every accepted booking. It must not block.
type Notifier interface {
	Dispatch(bookingID string)
}

// Options configure a Workflow.
type Options struct {
	// Location decides which calendar day is "today" for move-in checks.
	Location *time.Location
	// CapacityTracking makes confirmations consume a room slot.
	CapacityTracking bool
	Now              func() time.Time
	Notifier         Notifier
}

// Workflow implements booking intake and moderation.
type Workflow struct {
	store    bookingStore
	loc      *time.Location
	capacity bool
	now      func() time.Time
	notifier Notifier
	log      *zap.Logger
}

// NewWorkflow creates a Workflow.
func NewWorkflow(s bookingStore, opts Options, log *zap.Logger) *Workflow {
	w := &Workflow{
		store:    s,
		loc:      opts.Location,
		capacity: opts.CapacityTracking,
		now:      opts.Now,
		notifier: opts.Notifier,
		log:      log,
	}
	if w.loc == nil {
		w.loc = time.UTC
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w
}

// Submit validates a public request and stores it as pending.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (model.Booking, error) {
	now := w.now()
	n, err := in.normalize(parse.Today(now, w.loc), w.loc)
	if err != nil {
		return model.Booking{}, err
	}

	room, err := w.store.GetRoom(ctx, n.roomID)
	if err != nil {
		return model.Booking{}, err
	}
	if room.AvailabilityStatus == model.StatusFullyBooked {
		return model.Booking{}, apperr.RoomUnavailable(room.ID)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Booking{}, fmt.Errorf("generate booking id: %w", err)
	}
	b := model.Booking{
		ID:                  id.String(),
		RoomID:              room.ID,
		RoomName:            room.Name,
		RoomType:            room.RoomType,
		RoomPrice:           room.Price,
		FullName:            n.fullName,
		PhoneNumber:         n.phone,
		Email:               n.email,
		School:              n.school,
		PreferredMoveInDate: n.moveIn,
		Status:              model.BookingPending,
		CreatedAt:           now.UTC(),
		UpdatedAt:           now.UTC(),
	}
	if err := w.store.CreateBooking(ctx, &b); err != nil {
		return model.Booking{}, err
	}

	w.log.Info("booking submitted",
		zap.String("booking_id", b.ID),
		zap.String("room_id", b.RoomID),
		zap.String("move_in", b.PreferredMoveInDate),
	)
	if w.notifier != nil {
		w.notifier.Dispatch(b.ID)
	}
	return b, nil
}

// List returns bookings in submission order.
func (w *Workflow) List(ctx context.Context, f Filter) ([]model.Booking, error) {
	if f.Status != "" && !f.Status.Valid() {
		var fe apperr.FieldErrors
		fe.Add("status", "must be one of pending, confirmed, cancelled")
		return nil, fe.Err()
	}
	return w.store.ListBookings(ctx, store.BookingFilter{Status: f.Status})
}

// Get returns one booking.
func (w *Workflow) Get(ctx context.Context, id string) (model.Booking, error) {
	return w.store.GetBooking(ctx, id)
}

// SetStatus moves a pending booking to target. Of two concurrent calls on the
// same booking exactly one succeeds; the other gets an invalid-transition error.
func (w *Workflow) SetStatus(ctx context.Context, id string, target model.BookingStatus, actor string) (model.Booking, error) {
	if !target.Valid() {
		var fe apperr.FieldErrors
		fe.Add("status", "must be confirmed or cancelled")
		return model.Booking{}, fe.Err()
	}

	current, err := w.store.GetBooking(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if current.Status != model.BookingPending || target == model.BookingPending {
		return model.Booking{}, apperr.InvalidTransition(string(current.Status), string(target))
	}

	at := w.now().UTC()
	err = w.store.WithTx(ctx, func(tx store.Store) error {
		changed, err := tx.SetBookingStatus(ctx, id, model.BookingPending, target, at)
		if err != nil {
			return err
		}
		if !changed {
			return errLostRace
		}
		if err := tx.CreateBookingEvent(ctx, &model.BookingStatusEvent{
			BookingID: id,
			From:      model.BookingPending,
			To:        target,
			Actor:     actor,
			CreatedAt: at,
		}); err != nil {
			return err
		}
		if w.capacity && target == model.BookingConfirmed {
			return w.consumeSlot(ctx, tx, current.RoomID)
		}
		return nil
	})
	if errors.Is(err, errLostRace) {
		return model.Booking{}, w.lostRace(ctx, id, target)
	}
	if err != nil {
		return model.Booking{}, err
	}

	current.Status = target
	current.UpdatedAt = at
	w.log.Info("booking status changed",
		zap.String("booking_id", id),
		zap.String("status", string(target)),
		zap.String("actor", actor),
	)
	return current, nil
}

// Events returns the transition history of a booking, oldest first.
func (w *Workflow) Events(ctx context.Context, id string) ([]model.BookingStatusEvent, error) {
	if _, err := w.store.GetBooking(ctx, id); err != nil {
		return nil, err
	}
	return w.store.ListBookingEvents(ctx, id)
}

var errLostRace = errors.New("booking no longer pending")

// lostRace re-reads a booking whose conditional update matched no row.
func (w *Workflow) lostRace(ctx context.Context, id string, target model.BookingStatus) error {
	b, err := w.store.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	w.log.Info("booking transition lost to concurrent update",
		zap.String("booking_id", id),
		zap.String("status", string(b.Status)),
		zap.String("wanted", string(target)),
	)
	return apperr.InvalidTransition(string(b.Status), string(target))
}

// consumeSlot takes one slot from the booked room. A room deleted since
// submission is skipped.
func (w *Workflow) consumeSlot(ctx context.Context, tx store.Store, roomID string) error {
	_, err := tx.UpdateRoom(ctx, roomID, func(room *model.Room) error {
		DeriveCapacity(room)
		room.UpdatedAt = w.now().UTC()
		return nil
	})
	if apperr.Is(err, apperr.KindNotFound) {
		w.log.Warn("confirmed booking references a deleted room", zap.String("room_id", roomID))
		return nil
	}
	return err
}

// DeriveCapacity removes one available slot from room and updates its status:
// no slots left is fully booked, the last of several is almost full.
func DeriveCapacity(room *model.Room) {
	if room.AvailableSlots > 0 {
		room.AvailableSlots--
	}
	switch {
	case room.AvailableSlots == 0:
		room.AvailabilityStatus = model.StatusFullyBooked
	case room.AvailableSlots == 1 && room.TotalSlots > 1:
		room.AvailabilityStatus = model.StatusAlmostFull
	}
}
