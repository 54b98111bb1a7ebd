// Package contact stores messages left through the public contact form.
package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
)

const maxMessageLen = 5000

type messageStore interface {
	CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
}

// SubmitInput is a visitor's message.
type SubmitInput struct {
	Name    string
	Email   string
	Message string
}

// Log is the append-only contact message log.
type Log struct {
	store messageStore
	now   func() time.Time
	log   *zap.Logger
}

// NewLog creates a Log. A nil now uses time.Now.
func NewLog(s messageStore, now func() time.Time, log *zap.Logger) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{store: s, now: now, log: log}
}

// Submit validates and stores a message.
func (l *Log) Submit(ctx context.Context, in SubmitInput) (model.ContactMessage, error) {
	msg := model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}

	var fe apperr.FieldErrors
	if msg.Name == "" {
		fe.Add("name", "is required")
	}
	if msg.Email == "" {
		fe.Add("email", "is required")
	} else if addr, err := mail.ParseAddress(msg.Email); err != nil || addr.Address != msg.Email {
		fe.Add("email", "is not a valid email address")
	}
	if msg.Message == "" {
		fe.Add("message", "is required")
	} else if len(msg.Message) > maxMessageLen {
		fe.Add("message", fmt.Sprintf("must be at most %d characters", maxMessageLen))
	}
	if err := fe.Err(); err != nil {
		return model.ContactMessage{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("generate message id: %w", err)
	}
	msg.ID = id.String()
	msg.CreatedAt = l.now().UTC()

	if err := l.store.CreateContactMessage(ctx, &msg); err != nil {
		return model.ContactMessage{}, err
	}
	l.log.Info("contact message received", zap.String("message_id", msg.ID))
	return msg, nil
}

// List returns every message in the order received.
func (l *Log) List(ctx context.Context) ([]model.ContactMessage, error) {
	return l.store.ListContactMessages(ctx)
}
