package store

import (
	"context"
	"fmt"

	"hostel-booking-backend/internal/model"
)

func (s *gormStore) CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (s *gormStore) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	msgs := []model.ContactMessage{}
	if err := s.db.WithContext(ctx).Order(creationOrder).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}
