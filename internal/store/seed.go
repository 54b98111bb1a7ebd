package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"hostel-booking-backend/internal/model"
)

func (s *gormStore) CreateSeedMarker(ctx context.Context, name string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.SeedMarker{Name: name, CreatedAt: at})
	if res.Error != nil {
		return false, fmt.Errorf("failed to create seed marker %q: %w", name, res.Error)
	}
	return res.RowsAffected == 1, nil
}
