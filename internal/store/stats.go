package store

import (
	"context"
	"fmt"

	"hostel-booking-backend/internal/model"
)

func (s *gormStore) Stats(ctx context.Context) (Stats, error) {
	db := s.db.WithContext(ctx)
	var st Stats

	counts := []struct {
		name  string
		model any
		where map[string]any
		dst   *int64
	}{
		{"rooms", &model.Room{}, nil, &st.TotalRooms},
		{"available rooms", &model.Room{}, map[string]any{"availability_status": model.StatusAvailable}, &st.AvailableRooms},
		{"bookings", &model.Booking{}, nil, &st.TotalBookings},
		{"pending bookings", &model.Booking{}, map[string]any{"status": model.BookingPending}, &st.PendingBookings},
		{"confirmed bookings", &model.Booking{}, map[string]any{"status": model.BookingConfirmed}, &st.ConfirmedBookings},
		{"contact messages", &model.ContactMessage{}, nil, &st.TotalMessages},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return Stats{}, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}
	return st, nil
}
