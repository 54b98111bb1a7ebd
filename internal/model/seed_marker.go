package model

import "time"

// SeedMarker records that a named data set has been loaded.
type SeedMarker struct {
	Name      string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"not null"`
}
