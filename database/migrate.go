package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/brew-bliss-cafe/models"
)

// Migrate runs AutoMigrate and verifies the indexes the reservation flow
// depends on actually exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Reservation{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	m := db.Migrator()

	// The slot unique index is what prevents double-booking under
	// concurrent creates; refuse to start without it.
	if !m.HasIndex(&models.Reservation{}, "SlotKey") {
		if err := m.CreateIndex(&models.Reservation{}, "SlotKey"); err != nil {
			return fmt.Errorf("create slot index: %w", err)
		}
	}

	// Phone index backs /api/reservations/phone/:phone.
	if !m.HasIndex(&models.Reservation{}, "Phone") {
		if err := m.CreateIndex(&models.Reservation{}, "Phone"); err != nil {
			return fmt.Errorf("create phone index: %w", err)
		}
	}

	return nil
}
