package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/dbtest"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

func ptr[T any](v T) *T { return &v }

func newRegistry(t *testing.T) *Registry {
	return NewRegistry(store.NewGormStore(dbtest.New(t)), nil, zap.NewNop())
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var e *apperr.Error
	require.True(t, errors.As(err, &e), "expected *apperr.Error, got %v", err)
	require.Equal(t, apperr.KindValidation, e.Kind)
	return e.Fields
}

func TestRegistry_CreateDefaults(t *testing.T) {
	reg := newRegistry(t)

	room, err := reg.Create(context.Background(), CreateInput{
		Name:      "Premium Single Room A",
		RoomType:  model.RoomTypeSingle,
		Price:     4700,
		Amenities: []string{"Single Bed", "Study Desk"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, model.StatusAvailable, room.AvailabilityStatus)
	assert.Equal(t, float64(DefaultSecurityDeposit), room.SecurityDeposit)
	assert.Equal(t, 1, room.TotalSlots)
	assert.Equal(t, 1, room.AvailableSlots)
	assert.NotNil(t, room.Images)
	assert.False(t, room.CreatedAt.IsZero())

	got, err := reg.Get(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Single Bed", "Study Desk"}, []string(got.Amenities))
}

func TestRegistry_CreateValidation(t *testing.T) {
	reg := newRegistry(t)

	testCases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"negative price", CreateInput{Name: "x", RoomType: model.RoomTypeSingle, Price: -1}, "price"},
		{"negative deposit", CreateInput{Name: "x", RoomType: model.RoomTypeSingle, SecurityDeposit: ptr(-5.0)}, "security_deposit"},
		{"unknown room type", CreateInput{Name: "x", RoomType: "4-in-1"}, "room_type"},
		{"unknown status", CreateInput{Name: "x", RoomType: model.RoomTypeDouble, AvailabilityStatus: "closed"}, "availability_status"},
		{"blank name", CreateInput{Name: "  ", RoomType: model.RoomTypeDouble}, "name"},
		{"slots overflow", CreateInput{Name: "x", RoomType: model.RoomTypeDouble, TotalSlots: ptr(2), AvailableSlots: ptr(3)}, "available_slots"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Create(context.Background(), tc.in)
			assert.Contains(t, fieldsOf(t, err), tc.field)
		})
	}

	rooms, err := reg.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRegistry_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	reg := NewRegistry(store.NewGormStore(dbtest.New(t)), func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}, zap.NewNop())

	a, err := reg.Create(ctx, CreateInput{Name: "A", RoomType: model.RoomTypeSingle, Price: 4700})
	require.NoError(t, err)
	b, err := reg.Create(ctx, CreateInput{Name: "B", RoomType: model.RoomTypeDouble, Price: 4500})
	require.NoError(t, err)
	c, err := reg.Create(ctx, CreateInput{Name: "C", RoomType: model.RoomTypeDouble, Price: 4500, AvailabilityStatus: model.StatusFullyBooked})
	require.NoError(t, err)

	all, err := reg.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	doubles, err := reg.List(ctx, Filter{RoomType: model.RoomTypeDouble})
	require.NoError(t, err)
	assert.Len(t, doubles, 2)

	open, err := reg.List(ctx, Filter{RoomType: model.RoomTypeDouble, Availability: model.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, b.ID, open[0].ID)

	_, err = reg.List(ctx, Filter{Availability: "maybe"})
	assert.Contains(t, fieldsOf(t, err), "availability")
}

func TestRegistry_Update(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	room, err := reg.Create(ctx, CreateInput{Name: "A", RoomType: model.RoomTypeSingle, Price: 4700, Images: []string{"a", "b"}})
	require.NoError(t, err)

	updated, err := reg.Update(ctx, room.ID, Patch{
		AvailabilityStatus: ptr(model.StatusFullyBooked),
		Images:             ptr([]string{"b", "a"}),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusFullyBooked, updated.AvailabilityStatus)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, float64(4700), updated.Price)

	got, err := reg.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, []string(got.Images))

	t.Run("invalid status is rejected and nothing changes", func(t *testing.T) {
		_, err := reg.Update(ctx, room.ID, Patch{
			Name:               ptr("renamed"),
			AvailabilityStatus: ptr(model.AvailabilityStatus("sold_out")),
		})
		assert.Contains(t, fieldsOf(t, err), "availability_status")

		got, err := reg.Get(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Name)
		assert.Equal(t, model.StatusFullyBooked, got.AvailabilityStatus)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := reg.Update(ctx, room.ID, Patch{Price: ptr(-1.0)})
		assert.Contains(t, fieldsOf(t, err), "price")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := reg.Update(ctx, "missing", Patch{Name: ptr("x")})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestRegistry_StatusAlwaysEnumerated(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	room, err := reg.Create(ctx, CreateInput{Name: "A", RoomType: model.RoomTypeDouble})
	require.NoError(t, err)

	sequence := []model.AvailabilityStatus{
		model.StatusAlmostFull, "", "FULL", model.StatusFullyBooked, "available ", model.StatusAvailable, "null",
	}
	for _, s := range sequence {
		_, _ = reg.Update(ctx, room.ID, Patch{AvailabilityStatus: ptr(s)})

		got, err := reg.Get(ctx, room.ID)
		require.NoError(t, err)
		assert.True(t, got.AvailabilityStatus.Valid(), "persisted status %q", got.AvailabilityStatus)
	}
}

func TestRegistry_Delete(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	room, err := reg.Create(ctx, CreateInput{Name: "A", RoomType: model.RoomTypeSingle})
	require.NoError(t, err)

	require.NoError(t, reg.Delete(ctx, room.ID))
	_, err = reg.Get(ctx, room.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(reg.Delete(ctx, room.ID), apperr.KindNotFound))
}
