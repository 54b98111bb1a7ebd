package model

import (
	"time"

	"gorm.io/datatypes"
)

// RoomType is the occupancy layout of a room.
type RoomType string

const (
	RoomTypeSingle RoomType = "1-in-1"
	RoomTypeDouble RoomType = "2-in-1"
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble:
		return true
	}
	return false
}

// AvailabilityStatus is the operator-declared availability label of a room.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusAlmostFull  AvailabilityStatus = "almost_full"
	StatusFullyBooked AvailabilityStatus = "fully_booked"
)

// Valid reports whether s is one of the known availability states.
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusAlmostFull, StatusFullyBooked:
		return true
	}
	return false
}

// Room is a bookable unit of accommodation.
type Room struct {
	ID                 string                      `gorm:"primaryKey;size:36" json:"id"`
	Name               string                      `gorm:"size:256;not null" json:"name"`
	RoomType           RoomType                    `gorm:"size:16;not null;index" json:"room_type"`
	Price              float64                     `gorm:"not null" json:"price"`
	SecurityDeposit    float64                     `gorm:"not null" json:"security_deposit"`
	Description        string                      `gorm:"type:text" json:"description"`
	Amenities          datatypes.JSONSlice[string] `json:"amenities"`
	Images             datatypes.JSONSlice[string] `json:"images"`
	AvailabilityStatus AvailabilityStatus          `gorm:"size:16;not null;index" json:"availability_status"`
	TotalSlots         int                         `gorm:"not null" json:"total_slots"`
	AvailableSlots     int                         `gorm:"not null" json:"available_slots"`
	CreatedAt          time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"not null" json:"updated_at"`
}
