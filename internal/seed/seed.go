// Package seed loads the demo room catalogue and the bootstrap operator.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/auth"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

const markerName = "demo"

type seedStore interface {
	WithTx(ctx context.Context, fn func(tx store.Store) error) error
}

// Admin is the operator account created alongside the demo data.
// An empty Email skips account creation.
type Admin struct {
	Email    string
	Password string
	Name     string
}

// Result reports what a Seed call did.
type Result struct {
	Seeded       bool `json:"seeded"`
	RoomsCreated int  `json:"rooms_created"`
	AdminCreated bool `json:"admin_created"`
}

// Seeder populates an empty database. Repeated calls are no-ops.
type Seeder struct {
	store      seedStore
	admin      Admin
	bcryptCost int
	now        func() time.Time
	log        *zap.Logger
}

// NewSeeder creates a Seeder. A bcryptCost of 0 uses the library default.
func NewSeeder(s seedStore, admin Admin, bcryptCost int, now func() time.Time, log *zap.Logger) *Seeder {
	if now == nil {
		now = time.Now
	}
	return &Seeder{store: s, admin: admin, bcryptCost: bcryptCost, now: now, log: log}
}

// Seed loads the demo data unless it was loaded before or rooms already exist.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	var res Result
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		n, err := tx.CountRooms(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		now := s.now().UTC()
		fresh, err := tx.CreateSeedMarker(ctx, markerName, now)
		if err != nil || !fresh {
			return err
		}

		for _, room := range demoRooms() {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generate room id: %w", err)
			}
			room.ID = id.String()
			room.CreatedAt = now
			room.UpdatedAt = now
			if err := tx.CreateRoom(ctx, &room); err != nil {
				return err
			}
			res.RoomsCreated++
		}
		res.Seeded = true

		created, err := s.createAdmin(ctx, tx, now)
		res.AdminCreated = created
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if res.Seeded {
		s.log.Info("demo data seeded", zap.Int("rooms", res.RoomsCreated), zap.Bool("admin_created", res.AdminCreated))
	} else {
		s.log.Info("seed skipped; data already present")
	}
	return res, nil
}

func (s *Seeder) createAdmin(ctx context.Context, tx store.Store, now time.Time) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(s.admin.Email))
	if email == "" {
		return false, nil
	}
	n, err := tx.CountAdmins(ctx)
	if err != nil || n > 0 {
		return false, err
	}

	hash, err := auth.HashPassword(s.admin.Password, s.bcryptCost)
	if err != nil {
		return false, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("generate admin id: %w", err)
	}
	name := s.admin.Name
	if name == "" {
		name = "Admin"
	}
	if err := tx.CreateAdmin(ctx, &model.AdminAccount{
		ID:           id.String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
	}); err != nil {
		return false, err
	}
	return true, nil
}
