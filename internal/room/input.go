package room

import "hostel-booking-backend/internal/model"

// Filter narrows List. Empty fields match everything.
type Filter struct {
	RoomType     model.RoomType
	Availability model.AvailabilityStatus
}

// CreateInput carries the fields of a new room. Nil pointers take defaults.
type CreateInput struct {
	Name               string
	RoomType           model.RoomType
	Price              float64
	SecurityDeposit    *float64
	Description        string
	Amenities          []string
	Images             []string
	AvailabilityStatus model.AvailabilityStatus
	TotalSlots         *int
	AvailableSlots     *int
}

func (in CreateInput) build() model.Room {
	room := model.Room{
		Name:               in.Name,
		RoomType:           in.RoomType,
		Price:              in.Price,
		SecurityDeposit:    DefaultSecurityDeposit,
		Description:        in.Description,
		Amenities:          nonNil(in.Amenities),
		Images:             nonNil(in.Images),
		AvailabilityStatus: in.AvailabilityStatus,
		TotalSlots:         1,
	}
	if in.SecurityDeposit != nil {
		room.SecurityDeposit = *in.SecurityDeposit
	}
	if room.AvailabilityStatus == "" {
		room.AvailabilityStatus = model.StatusAvailable
	}
	if in.TotalSlots != nil {
		room.TotalSlots = *in.TotalSlots
	}
	room.AvailableSlots = room.TotalSlots
	if in.AvailableSlots != nil {
		room.AvailableSlots = *in.AvailableSlots
	}
	return room
}

// Patch is a partial room update; nil fields are left unchanged.
type Patch struct {
	Name               *string
	RoomType           *model.RoomType
	Price              *float64
	SecurityDeposit    *float64
	Description        *string
	Amenities          *[]string
	Images             *[]string
	AvailabilityStatus *model.AvailabilityStatus
	TotalSlots         *int
	AvailableSlots     *int
}

func (p Patch) apply(room *model.Room) {
	if p.Name != nil {
		room.Name = *p.Name
	}
	if p.RoomType != nil {
		room.RoomType = *p.RoomType
	}
	if p.Price != nil {
		room.Price = *p.Price
	}
	if p.SecurityDeposit != nil {
		room.SecurityDeposit = *p.SecurityDeposit
	}
	if p.Description != nil {
		room.Description = *p.Description
	}
	if p.Amenities != nil {
		room.Amenities = nonNil(*p.Amenities)
	}
	if p.Images != nil {
		room.Images = nonNil(*p.Images)
	}
	if p.AvailabilityStatus != nil {
		room.AvailabilityStatus = *p.AvailabilityStatus
	}
	if p.TotalSlots != nil {
		room.TotalSlots = *p.TotalSlots
	}
	if p.AvailableSlots != nil {
		room.AvailableSlots = *p.AvailableSlots
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
