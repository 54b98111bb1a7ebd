package booking

import (
	"net/mail"
	"strings"
	"time"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/parse"
)

// SubmitInput is a public booking request as received from the storefront.
type SubmitInput struct {
	RoomID              string
	FullName            string
	PhoneNumber         string
	Email               string
	School              string
	PreferredMoveInDate string
}

// Filter narrows List. The zero value lists every booking.
type Filter struct {
	Status model.BookingStatus
}

// normalized is a SubmitInput that passed field validation.
type normalized struct {
	roomID   string
	fullName string
	phone    string
	email    string
	school   string
	moveIn   string
}

func (in SubmitInput) normalize(today time.Time, loc *time.Location) (normalized, error) {
	var fe apperr.FieldErrors
	n := normalized{
		roomID:   strings.TrimSpace(in.RoomID),
		fullName: strings.TrimSpace(in.FullName),
		phone:    strings.TrimSpace(in.PhoneNumber),
		email:    strings.TrimSpace(in.Email),
		school:   strings.TrimSpace(in.School),
	}

	required := []struct{ field, value string }{
		{"room_id", n.roomID},
		{"full_name", n.fullName},
		{"phone_number", n.phone},
		{"email", n.email},
		{"school", n.school},
	}
	for _, r := range required {
		if r.value == "" {
			fe.Add(r.field, "is required")
		}
	}

	if n.email != "" {
		if addr, err := mail.ParseAddress(n.email); err != nil || addr.Address != n.email {
			fe.Add("email", "is not a valid email address")
		}
	}

	if strings.TrimSpace(in.PreferredMoveInDate) == "" {
		fe.Add("preferred_move_in_date", "is required")
	} else if d, err := parse.Date(in.PreferredMoveInDate, loc); err != nil {
		fe.Add("preferred_move_in_date", "must be a date in YYYY-MM-DD form")
	} else if d.Before(today) {
		fe.Add("preferred_move_in_date", "must not be in the past")
	} else {
		n.moveIn = d.Format(parse.DateLayout)
	}

	if err := fe.Err(); err != nil {
		return normalized{}, err
	}
	return n, nil
}
