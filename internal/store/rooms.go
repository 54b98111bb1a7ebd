package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
)

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *gormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Order(creationOrder)
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	if filter.Availability != "" {
		q = q.Where("availability_status = ?", filter.Availability)
	}

	rooms := []model.Room{}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id string) (model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return model.Room{}, notFound(err, "room", id)
	}
	return room, nil
}

func (s *gormStore) UpdateRoom(ctx context.Context, id string, mutate func(*model.Room) error) (model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, "id = ?", id).Error; err != nil {
			return notFound(err, "room", id)
		}
		if err := mutate(&room); err != nil {
			return err
		}
		room.ID = id
		if err := tx.Select("*").Omit("id", "created_at").Updates(&room).Error; err != nil {
			return fmt.Errorf("failed to update room %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("room", id)
	}
	return nil
}

func (s *gormStore) CountRooms(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return n, nil
}
