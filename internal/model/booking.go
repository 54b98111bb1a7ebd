package model

import "time"

// BookingStatus is the moderation state of a booking request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a non-binding accommodation request. Room fields are a snapshot
// taken at submission time and survive deletion of the room.
type Booking struct {
	ID                  string        `gorm:"primaryKey;size:36" json:"id"`
	RoomID              string        `gorm:"size:36;not null;index" json:"room_id"`
	RoomName            string        `gorm:"size:256;not null" json:"room_name"`
	RoomType            RoomType      `gorm:"size:16;not null" json:"room_type"`
	RoomPrice           float64       `gorm:"not null" json:"room_price"`
	FullName            string        `gorm:"size:256;not null" json:"full_name"`
	PhoneNumber         string        `gorm:"size:64;not null" json:"phone_number"`
	Email               string        `gorm:"size:256;not null" json:"email"`
	School              string        `gorm:"size:256;not null" json:"school"`
	PreferredMoveInDate string        `gorm:"size:10;not null" json:"preferred_move_in_date"`
	Status              BookingStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt           time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"not null" json:"updated_at"`
}

// BookingStatusEvent records one status transition of a booking.
type BookingStatusEvent struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID string        `gorm:"size:36;not null;index" json:"booking_id"`
	From      BookingStatus `gorm:"column:from_status;size:16;not null" json:"from"`
	To        BookingStatus `gorm:"column:to_status;size:16;not null" json:"to"`
	Actor     string        `gorm:"size:256;not null" json:"actor"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
}
