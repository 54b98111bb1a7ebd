package store

import (
	"context"
	"fmt"

	"hostel-booking-backend/internal/model"
)

func (s *gormStore) CreateAdmin(ctx context.Context, admin *model.AdminAccount) error {
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin %s: %w", admin.Email, err)
	}
	return nil
}

func (s *gormStore) GetAdminByEmail(ctx context.Context, email string) (model.AdminAccount, error) {
	var admin model.AdminAccount
	if err := s.db.WithContext(ctx).First(&admin, "email = ?", email).Error; err != nil {
		return model.AdminAccount{}, notFound(err, "admin", email)
	}
	return admin, nil
}

func (s *gormStore) GetAdminByID(ctx context.Context, id string) (model.AdminAccount, error) {
	var admin model.AdminAccount
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return model.AdminAccount{}, notFound(err, "admin", id)
	}
	return admin, nil
}

func (s *gormStore) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.AdminAccount{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}
