package booking

import (
	"context"
	"errors"
	"sync"
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

var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) Dispatch(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
}

type fixture struct {
	store    store.Store
	workflow *Workflow
	notifier *recordingNotifier
}

func newFixture(t *testing.T, capacity bool) *fixture {
	t.Helper()
	s := store.NewGormStore(dbtest.New(t))
	n := &recordingNotifier{}
	w := NewWorkflow(s, Options{
		Location:         time.UTC,
		CapacityTracking: capacity,
		Now:              func() time.Time { return fixedNow },
		Notifier:         n,
	}, zap.NewNop())
	return &fixture{store: s, workflow: w, notifier: n}
}

func (f *fixture) room(t *testing.T, id string, status model.AvailabilityStatus, total, available int) model.Room {
	t.Helper()
	r := model.Room{
		ID:                 id,
		Name:               "Room " + id,
		RoomType:           model.RoomTypeSingle,
		Price:              4700,
		SecurityDeposit:    300,
		AvailabilityStatus: status,
		TotalSlots:         total,
		AvailableSlots:     available,
		CreatedAt:          fixedNow,
		UpdatedAt:          fixedNow,
	}
	require.NoError(t, f.store.CreateRoom(context.Background(), &r))
	return r
}

func validInput(roomID string) SubmitInput {
	return SubmitInput{
		RoomID:              roomID,
		FullName:            "Ama Mensah",
		PhoneNumber:         "+233 20 000 0000",
		Email:               "ama@example.com",
		School:              "KNUST",
		PreferredMoveInDate: "2026-11-01",
	}
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	require.Error(t, err)
	return apperr.KindOf(err)
}

func TestWorkflow_SubmitSnapshotsRoom(t *testing.T) {
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)

	b, err := f.workflow.Submit(context.Background(), validInput("r1"))
	require.NoError(t, err)

	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, "r1", b.RoomID)
	assert.Equal(t, "Room r1", b.RoomName)
	assert.Equal(t, model.RoomTypeSingle, b.RoomType)
	assert.Equal(t, 4700.0, b.RoomPrice)
	assert.Equal(t, "2026-11-01", b.PreferredMoveInDate)
	assert.Equal(t, []string{b.ID}, f.notifier.ids)

	// Renaming the room afterwards leaves the snapshot alone.
	_, err = f.store.UpdateRoom(context.Background(), "r1", func(r *model.Room) error {
		r.Name = "Renamed"
		return nil
	})
	require.NoError(t, err)
	got, err := f.workflow.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Room r1", got.RoomName)
}

func TestWorkflow_SubmitValidation(t *testing.T) {
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)

	testCases := []struct {
		name   string
		mutate func(*SubmitInput)
		field  string
	}{
		{"blank name", func(in *SubmitInput) { in.FullName = "   " }, "full_name"},
		{"missing phone", func(in *SubmitInput) { in.PhoneNumber = "" }, "phone_number"},
		{"missing school", func(in *SubmitInput) { in.School = "" }, "school"},
		{"bad email", func(in *SubmitInput) { in.Email = "not-an-email" }, "email"},
		{"missing room", func(in *SubmitInput) { in.RoomID = "" }, "room_id"},
		{"unparseable date", func(in *SubmitInput) { in.PreferredMoveInDate = "next week" }, "preferred_move_in_date"},
		{"past date", func(in *SubmitInput) { in.PreferredMoveInDate = "2026-10-14" }, "preferred_move_in_date"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput("r1")
			tc.mutate(&in)
			_, err := f.workflow.Submit(context.Background(), in)
			require.Equal(t, apperr.KindValidation, kindOf(t, err))

			var e *apperr.Error
			require.True(t, errors.As(err, &e))
			assert.Contains(t, e.Fields, tc.field)
		})
	}

	bookings, err := f.workflow.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.Empty(t, f.notifier.ids)
}

func TestWorkflow_SubmitAcceptsToday(t *testing.T) {
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)

	in := validInput("r1")
	in.PreferredMoveInDate = "2026-10-15"
	_, err := f.workflow.Submit(context.Background(), in)
	assert.NoError(t, err)
}

func TestWorkflow_SubmitRoomChecks(t *testing.T) {
	f := newFixture(t, false)
	f.room(t, "full", model.StatusFullyBooked, 1, 0)
	f.room(t, "almost", model.StatusAlmostFull, 2, 1)

	_, err := f.workflow.Submit(context.Background(), validInput("full"))
	assert.Equal(t, apperr.KindRoomUnavailable, kindOf(t, err))

	_, err = f.workflow.Submit(context.Background(), validInput("ghost"))
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))

	bookings, err := f.workflow.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)

	_, err = f.workflow.Submit(context.Background(), validInput("almost"))
	assert.NoError(t, err)
}

func TestWorkflow_ConfirmThenCancelFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)

	b, err := f.workflow.Submit(ctx, validInput("r1"))
	require.NoError(t, err)

	confirmed, err := f.workflow.SetStatus(ctx, b.ID, model.BookingConfirmed, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, confirmed.Status)

	_, err = f.workflow.SetStatus(ctx, b.ID, model.BookingCancelled, "admin@example.com")
	assert.Equal(t, apperr.KindInvalidTransition, kindOf(t, err))

	got, err := f.workflow.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, got.Status)

	events, err := f.workflow.Events(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.BookingPending, events[0].From)
	assert.Equal(t, model.BookingConfirmed, events[0].To)
	assert.Equal(t, "admin@example.com", events[0].Actor)

	// Capacity tracking is off: the room is untouched.
	room, err := f.store.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, room.AvailabilityStatus)
	assert.Equal(t, 1, room.AvailableSlots)
}

func TestWorkflow_SetStatusRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)
	b, err := f.workflow.Submit(ctx, validInput("r1"))
	require.NoError(t, err)

	_, err = f.workflow.SetStatus(ctx, b.ID, "archived", "op")
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	_, err = f.workflow.SetStatus(ctx, b.ID, model.BookingPending, "op")
	assert.Equal(t, apperr.KindInvalidTransition, kindOf(t, err))

	_, err = f.workflow.SetStatus(ctx, "missing", model.BookingConfirmed, "op")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))

	_, err = f.workflow.Events(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))

	got, err := f.workflow.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, got.Status)
}

func TestWorkflow_ListFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)

	var ids []string
	for i := 0; i < 3; i++ {
		b, err := f.workflow.Submit(ctx, validInput("r1"))
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}
	_, err := f.workflow.SetStatus(ctx, ids[1], model.BookingCancelled, "op")
	require.NoError(t, err)

	all, err := f.workflow.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, b := range all {
		assert.Equal(t, ids[i], b.ID)
	}

	pending, err := f.workflow.List(ctx, Filter{Status: model.BookingPending})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[2], pending[1].ID)

	_, err = f.workflow.List(ctx, Filter{Status: "done"})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

// interleavingStore lets another transition commit between the workflow's
// read of a booking and its conditional update.
type interleavingStore struct {
	store.Store
	once   sync.Once
	before func()
}

func (s *interleavingStore) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	b, err := s.Store.GetBooking(ctx, id)
	s.once.Do(s.before)
	return b, err
}

func TestWorkflow_LostRaceReportsInvalidTransition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)
	b, err := f.workflow.Submit(ctx, validInput("r1"))
	require.NoError(t, err)

	racing := &interleavingStore{Store: f.store, before: func() {
		_, err := f.workflow.SetStatus(ctx, b.ID, model.BookingConfirmed, "first")
		require.NoError(t, err)
	}}
	loser := NewWorkflow(racing, Options{Now: func() time.Time { return fixedNow }}, zap.NewNop())

	_, err = loser.SetStatus(ctx, b.ID, model.BookingCancelled, "second")
	assert.Equal(t, apperr.KindInvalidTransition, kindOf(t, err))
	assert.Contains(t, err.Error(), "confirmed")

	events, err := f.workflow.Events(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "first", events[0].Actor)
}

func TestWorkflow_ConcurrentTransitionsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.room(t, "r1", model.StatusAvailable, 1, 1)
	b, err := f.workflow.Submit(ctx, validInput("r1"))
	require.NoError(t, err)

	targets := []model.BookingStatus{
		model.BookingConfirmed, model.BookingCancelled,
		model.BookingConfirmed, model.BookingCancelled,
	}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target model.BookingStatus) {
			defer wg.Done()
			_, errs[i] = f.workflow.SetStatus(ctx, b.ID, target, "op")
		}(i, target)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	}
	assert.Equal(t, 1, wins)

	events, err := f.workflow.Events(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestWorkflow_CapacityTracking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.room(t, "r1", model.StatusAvailable, 3, 3)

	var ids []string
	for i := 0; i < 3; i++ {
		b, err := f.workflow.Submit(ctx, validInput("r1"))
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	wantStatus := []model.AvailabilityStatus{model.StatusAvailable, model.StatusAlmostFull, model.StatusFullyBooked}
	for i, id := range ids {
		_, err := f.workflow.SetStatus(ctx, id, model.BookingConfirmed, "op")
		require.NoError(t, err)

		room, err := f.store.GetRoom(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 3-i-1, room.AvailableSlots)
		assert.Equal(t, wantStatus[i], room.AvailabilityStatus, "after %d confirmations", i+1)
	}

	_, err := f.workflow.Submit(ctx, validInput("r1"))
	assert.Equal(t, apperr.KindRoomUnavailable, kindOf(t, err))
}

func TestWorkflow_CapacityTrackingCancelKeepsSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.room(t, "r1", model.StatusAvailable, 1, 1)
	b, err := f.workflow.Submit(ctx, validInput("r1"))
	require.NoError(t, err)

	_, err = f.workflow.SetStatus(ctx, b.ID, model.BookingCancelled, "op")
	require.NoError(t, err)

	room, err := f.store.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, room.AvailableSlots)
	assert.Equal(t, model.StatusAvailable, room.AvailabilityStatus)
}

func TestWorkflow_CapacityTrackingDeletedRoom(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.room(t, "r1", model.StatusAvailable, 1, 1)
	b, err := f.workflow.Submit(ctx, validInput("r1"))
	require.NoError(t, err)
	require.NoError(t, f.store.DeleteRoom(ctx, "r1"))

	got, err := f.workflow.SetStatus(ctx, b.ID, model.BookingConfirmed, "op")
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, got.Status)
	assert.Equal(t, "Room r1", got.RoomName)
}

func TestDeriveCapacity(t *testing.T) {
	testCases := []struct {
		name       string
		total      int
		available  int
		status     model.AvailabilityStatus
		wantSlots  int
		wantStatus model.AvailabilityStatus
	}{
		{"plenty left", 5, 4, model.StatusAvailable, 3, model.StatusAvailable},
		{"last of several", 3, 2, model.StatusAvailable, 1, model.StatusAlmostFull},
		{"single room fills", 1, 1, model.StatusAvailable, 0, model.StatusFullyBooked},
		{"already empty", 2, 0, model.StatusAlmostFull, 0, model.StatusFullyBooked},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := model.Room{TotalSlots: tc.total, AvailableSlots: tc.available, AvailabilityStatus: tc.status}
			DeriveCapacity(&r)
			assert.Equal(t, tc.wantSlots, r.AvailableSlots)
			assert.Equal(t, tc.wantStatus, r.AvailabilityStatus)
		})
	}
}
