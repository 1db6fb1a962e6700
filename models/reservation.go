package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Reservation statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ActiveStatuses are the statuses that occupy a slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

// Occasions accepted on a reservation. Empty string means none given.
var Occasions = []string{"", "birthday", "anniversary", "business", "date", "family", "other"}

type Reservation struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name"`
	Email    string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone    string    `gorm:"type:varchar(20);not null;index" json:"phone"`
	Guests   int       `gorm:"not null" json:"guests"`
	Date     time.Time `gorm:"type:date;not null" json:"date"`
	Time     string    `gorm:"type:varchar(5);not null" json:"time"`
	Occasion string    `gorm:"type:varchar(20);not null;default:''" json:"occasion"`
	Notes    string    `gorm:"type:varchar(500)" json:"notes"`
	Status   string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// SlotKey mirrors (date, time) for pending/confirmed rows and is NULL
	// otherwise, so the unique index only ever applies to active
	// reservations. This is what actually guarantees one active
	// reservation per slot; the pre-check in the service exists for the
	// friendlier error message.
	SlotKey *string `gorm:"type:varchar(20);uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsActive reports whether the reservation occupies its slot.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// SlotKeyFor builds the uniqueness key for a (date, time) pair.
func SlotKeyFor(date time.Time, hhmm string) string {
	return fmt.Sprintf("%s|%s", date.Format("2006-01-02"), hhmm)
}

// BeforeSave keeps SlotKey in sync with date/time/status.
func (r *Reservation) BeforeSave(tx *gorm.DB) error {
	if r.IsActive() {
		key := SlotKeyFor(r.Date, r.Time)
		r.SlotKey = &key
	} else {
		r.SlotKey = nil
	}
	return nil
}
