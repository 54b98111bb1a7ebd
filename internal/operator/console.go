// Package operator exposes every administrative operation behind a credential
// check. Nothing is read or written until the credential is authorized.
package operator

import (
	"context"
	"strings"
	"time"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/auth"
	"hostel-booking-backend/internal/booking"
	"hostel-booking-backend/internal/contact"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/query"
	"hostel-booking-backend/internal/room"
	"hostel-booking-backend/internal/store"
)

type authorizer interface {
	Authorize(ctx context.Context, cred auth.Credential) (auth.Principal, error)
	Register(ctx context.Context, in auth.RegisterInput) (model.AdminAccount, error)
}

type subscriptionStore interface {
	UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// Console is the operator-facing facade over the room, booking and contact
// services.
type Console struct {
	gate     authorizer
	rooms    *room.Registry
	bookings *booking.Workflow
	contacts *contact.Log
	query    *query.Facade
	subs     subscriptionStore
	now      func() time.Time
}

// Deps bundles the services a Console delegates to.
type Deps struct {
	Gate          authorizer
	Rooms         *room.Registry
	Bookings      *booking.Workflow
	Contacts      *contact.Log
	Query         *query.Facade
	Subscriptions subscriptionStore
	Now           func() time.Time
}

// NewConsole creates a Console.
func NewConsole(d Deps) *Console {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Console{
		gate:     d.Gate,
		rooms:    d.Rooms,
		bookings: d.Bookings,
		contacts: d.Contacts,
		query:    d.Query,
		subs:     d.Subscriptions,
		now:      now,
	}
}

// Whoami returns the operator cred belongs to.
func (c *Console) Whoami(ctx context.Context, cred auth.Credential) (auth.Principal, error) {
	return c.gate.Authorize(ctx, cred)
}

func (c *Console) CreateRoom(ctx context.Context, cred auth.Credential, in room.CreateInput) (model.Room, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return model.Room{}, err
	}
	return c.rooms.Create(ctx, in)
}

func (c *Console) UpdateRoom(ctx context.Context, cred auth.Credential, id string, p room.Patch) (model.Room, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return model.Room{}, err
	}
	return c.rooms.Update(ctx, id, p)
}

func (c *Console) DeleteRoom(ctx context.Context, cred auth.Credential, id string) error {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return err
	}
	return c.rooms.Delete(ctx, id)
}

func (c *Console) ListBookings(ctx context.Context, cred auth.Credential, f booking.Filter) ([]model.Booking, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return nil, err
	}
	return c.bookings.List(ctx, f)
}

// SetBookingStatus records the operator's email as the actor of the transition.
func (c *Console) SetBookingStatus(ctx context.Context, cred auth.Credential, id string, target model.BookingStatus) (model.Booking, error) {
	p, err := c.gate.Authorize(ctx, cred)
	if err != nil {
		return model.Booking{}, err
	}
	return c.bookings.SetStatus(ctx, id, target, p.Email)
}

func (c *Console) BookingEvents(ctx context.Context, cred auth.Credential, id string) ([]model.BookingStatusEvent, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return nil, err
	}
	return c.bookings.Events(ctx, id)
}

func (c *Console) ListContactMessages(ctx context.Context, cred auth.Credential) ([]model.ContactMessage, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return nil, err
	}
	return c.contacts.List(ctx)
}

func (c *Console) Stats(ctx context.Context, cred auth.Credential) (store.Stats, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return store.Stats{}, err
	}
	return c.query.Stats(ctx)
}

// Register lets an existing operator create another operator account.
func (c *Console) Register(ctx context.Context, cred auth.Credential, in auth.RegisterInput) (model.AdminAccount, error) {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return model.AdminAccount{}, err
	}
	return c.gate.Register(ctx, in)
}

// PushSubscriptionInput is a browser PushSubscription as serialized by the
// Push API.
type PushSubscriptionInput struct {
	Endpoint string
	P256DH   string
	Auth     string
}

// Subscribe registers the operator's device for new-booking notifications.
func (c *Console) Subscribe(ctx context.Context, cred auth.Credential, in PushSubscriptionInput) error {
	p, err := c.gate.Authorize(ctx, cred)
	if err != nil {
		return err
	}

	var fe apperr.FieldErrors
	endpoint := strings.TrimSpace(in.Endpoint)
	if !strings.HasPrefix(endpoint, "https://") {
		fe.Add("endpoint", "must be an https URL")
	}
	if strings.TrimSpace(in.P256DH) == "" {
		fe.Add("keys.p256dh", "is required")
	}
	if strings.TrimSpace(in.Auth) == "" {
		fe.Add("keys.auth", "is required")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	return c.subs.UpsertPushSubscription(ctx, &model.PushSubscription{
		Endpoint:  endpoint,
		P256DH:    in.P256DH,
		Auth:      in.Auth,
		AdminID:   p.AdminID,
		CreatedAt: c.now().UTC(),
	})
}

// Unsubscribe removes a device registration. Unknown endpoints are ignored.
func (c *Console) Unsubscribe(ctx context.Context, cred auth.Credential, endpoint string) error {
	if _, err := c.gate.Authorize(ctx, cred); err != nil {
		return err
	}
	if strings.TrimSpace(endpoint) == "" {
		var fe apperr.FieldErrors
		fe.Add("endpoint", "is required")
		return fe.Err()
	}
	return c.subs.DeletePushSubscription(ctx, strings.TrimSpace(endpoint))
}
