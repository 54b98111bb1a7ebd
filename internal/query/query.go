// Package query serves the read side used by the storefront and dashboard.
package query

import (
	"context"

	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/room"
	"hostel-booking-backend/internal/store"
)

type statsStore interface {
	Stats(ctx context.Context) (store.Stats, error)
}

// Facade answers read-only questions about rooms and activity.
type Facade struct {
	rooms *room.Registry
	stats statsStore
}

// NewFacade creates a Facade.
func NewFacade(rooms *room.Registry, stats statsStore) *Facade {
	return &Facade{rooms: rooms, stats: stats}
}

// ListRooms returns rooms in creation order. Empty filters match everything.
func (f *Facade) ListRooms(ctx context.Context, roomType model.RoomType, availability model.AvailabilityStatus) ([]model.Room, error) {
	return f.rooms.List(ctx, room.Filter{RoomType: roomType, Availability: availability})
}

// GetRoom returns one room.
func (f *Facade) GetRoom(ctx context.Context, id string) (model.Room, error) {
	return f.rooms.Get(ctx, id)
}

// Stats returns dashboard counters. Callers must authorize first.
func (f *Facade) Stats(ctx context.Context) (store.Stats, error) {
	return f.stats.Stats(ctx)
}
