package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yeremiapane/brew-bliss-cafe/models"
	"gorm.io/gorm"
)

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound        = errors.New("Reservation not found")
	ErrSlotUnavailable = errors.New("Time slot unavailable")
)

// ValidationError carries the per-field messages produced by
// models.ValidateReservation.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	return "Validation error"
}

// Messages flattens the field errors for the response body.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// ReservationService menangani operasi CRUD reservasi dan pengecekan
// bentrok slot.
type ReservationService struct {
	db *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// ReservationInput is the create payload after JSON binding.
type ReservationInput struct {
	Name     string
	Email    string
	Phone    string
	Guests   int
	Date     string
	Time     string
	Occasion string
	Notes    string
	Status   string
}

// ReservationUpdate is a partial update; nil fields are left untouched.
type ReservationUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Guests   *int
	Date     *string
	Time     *string
	Occasion *string
	Notes    *string
	Status   *string
}

// ListFilter narrows List; zero values mean "no filter" / defaults.
type ListFilter struct {
	Status string
	Date   string
	Page   int
	Limit  int
}

// Page is one page of reservations plus pagination metadata.
type Page struct {
	Reservations []models.Reservation
	TotalPages   int
	CurrentPage  int
	Total        int64
}

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// HasConflict reports whether another active reservation already holds the
// exact (date, time) slot. excludeID is skipped so a reservation never
// conflicts with itself during an update; pass 0 on create.
func (s *ReservationService) HasConflict(date time.Time, hhmm string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Reservation{}).
		Where("date = ? AND time = ? AND status IN ?", date, hhmm, models.ActiveStatuses)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create validates the input, rejects occupied slots and persists the
// reservation with status defaulted to pending.
func (s *ReservationService) Create(in ReservationInput) (*models.Reservation, error) {
	r := &models.Reservation{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Guests:   in.Guests,
		Time:     in.Time,
		Occasion: in.Occasion,
		Notes:    in.Notes,
		Status:   in.Status,
	}
	if r.Status == "" {
		r.Status = models.StatusPending
	}

	var dateErr *models.FieldError
	if in.Date != "" {
		date, err := ParseDate(in.Date)
		if err != nil {
			dateErr = &models.FieldError{Field: "date", Message: "Please enter a valid date in YYYY-MM-DD format"}
		} else {
			r.Date = date
		}
	}

	errs := models.ValidateReservation(r, true)
	if dateErr != nil {
		// the zero date also trips the required check; the format error
		// is the one worth reporting
		kept := errs[:0]
		for _, e := range errs {
			if e.Field != "date" {
				kept = append(kept, e)
			}
		}
		errs = append(kept, *dateErr)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	conflict, err := s.HasConflict(r.Date, r.Time, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotUnavailable
	}

	if err := s.db.Create(r).Error; err != nil {
		// Two creates can race past the pre-check; the unique slot index
		// catches the loser here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	return r, nil
}

// List returns a page of reservations ordered by (date, time) ascending,
// optionally filtered by status and/or a single calendar day.
func (s *ReservationService) List(f ListFilter) (*Page, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	q := s.db.Model(&models.Reservation{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		day, err := ParseDate(f.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date filter %q: %w", f.Date, err)
		}
		q = q.Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := q.Order("date ASC, time ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return &Page{
		Reservations: reservations,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage:  page,
		Total:        total,
	}, nil
}

// GetByID fetches one reservation or ErrNotFound.
func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Update applies a partial update. The slot is re-checked only when the
// payload touches date or time, using the new values where given and the
// stored ones otherwise. The merged record is fully re-validated before
// saving.
func (s *ReservationService) Update(id uint, in ReservationUpdate) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	newDate := r.Date
	if in.Date != nil {
		parsed, err := ParseDate(*in.Date)
		if err != nil {
			return nil, &ValidationError{Fields: []models.FieldError{
				{Field: "date", Message: "Please enter a valid date in YYYY-MM-DD format"},
			}}
		}
		newDate = parsed
	}
	newTime := r.Time
	if in.Time != nil {
		newTime = *in.Time
	}

	if in.Date != nil || in.Time != nil {
		conflict, err := s.HasConflict(newDate, newTime, r.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, ErrSlotUnavailable
		}
	}

	r.Date = newDate
	r.Time = newTime
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Email != nil {
		r.Email = *in.Email
	}
	if in.Phone != nil {
		r.Phone = *in.Phone
	}
	if in.Guests != nil {
		r.Guests = *in.Guests
	}
	if in.Occasion != nil {
		r.Occasion = *in.Occasion
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if in.Status != nil {
		r.Status = *in.Status
	}

	// the past-date rule only applies when the payload actually moves the
	// date, so records with historical dates stay editable
	if errs := models.ValidateReservation(&r, in.Date != nil); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.db.Save(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	return &r, nil
}

// Delete removes a reservation permanently.
func (s *ReservationService) Delete(id uint) error {
	var r models.Reservation
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Delete(&r).Error
}

// ListByPhone returns every reservation with an exact phone match, ordered
// by (date, time) ascending.
func (s *ReservationService) ListByPhone(phone string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.
		Where("phone = ?", phone).
		Order("date ASC, time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
