package store

import "hostel-booking-backend/internal/model"

// RoomFilter narrows a room listing. Zero values match everything.
type RoomFilter struct {
	RoomType     model.RoomType
	Availability model.AvailabilityStatus
}

// BookingFilter narrows a booking listing. Zero values match everything.
type BookingFilter struct {
	Status model.BookingStatus
}

// Stats holds dashboard counters.
type Stats struct {
	TotalRooms        int64 `json:"total_rooms"`
	AvailableRooms    int64 `json:"available_rooms"`
	TotalBookings     int64 `json:"total_bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	TotalMessages     int64 `json:"total_messages"`
}
