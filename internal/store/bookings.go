package store

import (
	"context"
	"fmt"
	"time"

	"hostel-booking-backend/internal/model"
)

func (s *gormStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (s *gormStore) ListBookings(ctx context.Context, filter BookingFilter) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).Order(creationOrder)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	bookings := []model.Booking{}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *gormStore) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	var booking model.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return model.Booking{}, notFound(err, "booking", id)
	}
	return booking, nil
}

func (s *gormStore) SetBookingStatus(ctx context.Context, id string, from, to model.BookingStatus, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": at})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update booking %s status: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *gormStore) CreateBookingEvent(ctx context.Context, event *model.BookingStatusEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record status event for booking %s: %w", event.BookingID, err)
	}
	return nil
}

func (s *gormStore) ListBookingEvents(ctx context.Context, bookingID string) ([]model.BookingStatusEvent, error) {
	events := []model.BookingStatusEvent{}
	if err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events for booking %s: %w", bookingID, err)
	}
	return events, nil
}
