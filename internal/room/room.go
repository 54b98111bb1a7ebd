// Package room owns Room records and the availability-status enumeration.
package room

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

// DefaultSecurityDeposit applies when a new room omits its deposit.
const DefaultSecurityDeposit = 300

type roomStore interface {
	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context, filter store.RoomFilter) ([]model.Room, error)
	GetRoom(ctx context.Context, id string) (model.Room, error)
	UpdateRoom(ctx context.Context, id string, mutate func(*model.Room) error) (model.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// Registry is the CRUD surface over rooms. It performs no authorization.
type Registry struct {
	store roomStore
	now   func() time.Time
	log   *zap.Logger
}

// NewRegistry creates a Registry. A nil now uses time.Now.
func NewRegistry(s roomStore, now func() time.Time, log *zap.Logger) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{store: s, now: now, log: log}
}

// Create validates input and stores a new room.
func (r *Registry) Create(ctx context.Context, in CreateInput) (model.Room, error) {
	room := in.build()
	if err := validate(&room); err != nil {
		return model.Room{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Room{}, fmt.Errorf("generate room id: %w", err)
	}
	room.ID = id.String()
	now := r.now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now

	if err := r.store.CreateRoom(ctx, &room); err != nil {
		return model.Room{}, err
	}
	r.log.Info("room created", zap.String("room_id", room.ID), zap.String("room_type", string(room.RoomType)))
	return room, nil
}

// List returns rooms in creation order, optionally filtered.
func (r *Registry) List(ctx context.Context, f Filter) ([]model.Room, error) {
	var fe apperr.FieldErrors
	if f.RoomType != "" && !f.RoomType.Valid() {
		fe.Add("room_type", fmt.Sprintf("must be one of %s", joinTypes()))
	}
	if f.Availability != "" && !f.Availability.Valid() {
		fe.Add("availability", fmt.Sprintf("must be one of %s", joinStatuses()))
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}
	return r.store.ListRooms(ctx, store.RoomFilter{RoomType: f.RoomType, Availability: f.Availability})
}

// Get returns one room or a not-found error.
func (r *Registry) Get(ctx context.Context, id string) (model.Room, error) {
	return r.store.GetRoom(ctx, id)
}

// Update applies the fields present in p. The merged room must pass the
// same validation as Create.
func (r *Registry) Update(ctx context.Context, id string, p Patch) (model.Room, error) {
	room, err := r.store.UpdateRoom(ctx, id, func(room *model.Room) error {
		p.apply(room)
		room.UpdatedAt = r.now().UTC()
		return validate(room)
	})
	if err != nil {
		return model.Room{}, err
	}
	r.log.Info("room updated", zap.String("room_id", id), zap.String("availability_status", string(room.AvailabilityStatus)))
	return room, nil
}

// Delete removes a room. Bookings referencing it keep their snapshot.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteRoom(ctx, id); err != nil {
		return err
	}
	r.log.Info("room deleted", zap.String("room_id", id))
	return nil
}

func validate(room *model.Room) error {
	var fe apperr.FieldErrors
	if strings.TrimSpace(room.Name) == "" {
		fe.Add("name", "is required")
	}
	if !room.RoomType.Valid() {
		fe.Add("room_type", fmt.Sprintf("must be one of %s", joinTypes()))
	}
	if room.Price < 0 {
		fe.Add("price", "must not be negative")
	}
	if room.SecurityDeposit < 0 {
		fe.Add("security_deposit", "must not be negative")
	}
	if !room.AvailabilityStatus.Valid() {
		fe.Add("availability_status", fmt.Sprintf("must be one of %s", joinStatuses()))
	}
	if room.TotalSlots < 0 {
		fe.Add("total_slots", "must not be negative")
	}
	if room.AvailableSlots < 0 {
		fe.Add("available_slots", "must not be negative")
	} else if room.AvailableSlots > room.TotalSlots {
		fe.Add("available_slots", "must not exceed total_slots")
	}
	return fe.Err()
}

func joinTypes() string {
	return strings.Join([]string{string(model.RoomTypeSingle), string(model.RoomTypeDouble)}, ", ")
}

func joinStatuses() string {
	return strings.Join([]string{
		string(model.StatusAvailable),
		string(model.StatusAlmostFull),
		string(model.StatusFullyBooked),
	}, ", ")
}
