package models

import (
	"regexp"
	"time"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9]{0,15}$`)
	timeRe  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// FieldError is a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidateReservation checks field formats and ranges, independent of
// storage. checkPast additionally rejects dates before today at 00:00;
// it is set on create and left off when re-validating an existing record,
// so old reservations stay editable.
func ValidateReservation(r *Reservation, checkPast bool) []FieldError {
	var errs []FieldError

	// lengths are counted in characters, not bytes
	if r.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	} else if utf8.RuneCountInString(r.Name) < 2 {
		errs = append(errs, FieldError{"name", "Name must be at least 2 characters long"})
	} else if utf8.RuneCountInString(r.Name) > 100 {
		errs = append(errs, FieldError{"name", "Name cannot exceed 100 characters"})
	}

	if r.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !emailRe.MatchString(r.Email) {
		errs = append(errs, FieldError{"email", "Please enter a valid email address"})
	}

	if r.Phone == "" {
		errs = append(errs, FieldError{"phone", "Phone number is required"})
	} else if !phoneRe.MatchString(r.Phone) {
		errs = append(errs, FieldError{"phone", "Please enter a valid phone number"})
	}

	if r.Guests < 1 {
		errs = append(errs, FieldError{"guests", "At least 1 guest is required"})
	} else if r.Guests > 20 {
		errs = append(errs, FieldError{"guests", "Maximum 20 guests allowed"})
	}

	if r.Date.IsZero() {
		errs = append(errs, FieldError{"date", "Reservation date is required"})
	} else if checkPast {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if r.Date.Before(today) {
			errs = append(errs, FieldError{"date", "Reservation date cannot be in the past"})
		}
	}

	if r.Time == "" {
		errs = append(errs, FieldError{"time", "Reservation time is required"})
	} else if !timeRe.MatchString(r.Time) {
		errs = append(errs, FieldError{"time", "Please enter a valid time in HH:MM format"})
	}

	if !contains(Occasions, r.Occasion) {
		errs = append(errs, FieldError{"occasion", "Invalid occasion"})
	}

	if utf8.RuneCountInString(r.Notes) > 500 {
		errs = append(errs, FieldError{"notes", "Notes cannot exceed 500 characters"})
	}

	switch r.Status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
	default:
		errs = append(errs, FieldError{"status", "Invalid status"})
	}

	return errs
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
