package model

import "time"

// AdminAccount is an operator allowed to manage rooms and bookings.
type AdminAccount struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Name         string    `gorm:"size:256;not null" json:"name"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
