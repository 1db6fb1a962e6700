package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/brew-bliss-cafe/events"
	"github.com/yeremiapane/brew-bliss-cafe/services"
	"github.com/yeremiapane/brew-bliss-cafe/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

// The public reservation API keeps the response shapes of the original
// site contract ({message, reservation}, {reservations, totalPages, ...})
// rather than the utils.RespondJSON envelope used by the admin surface.

// CreateReservation -> book a slot
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Guests   int    `json:"guests"`
		Date     string `json:"date"`
		Time     string `json:"time"`
		Occasion string `json:"occasion"`
		Notes    string `json:"notes"`
		Status   string `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	reservation, err := rc.Service.Create(services.ReservationInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Guests:   req.Guests,
		Date:     req.Date,
		Time:     req.Time,
		Occasion: req.Occasion,
		Notes:    req.Notes,
		Status:   req.Status,
	})
	if err != nil {
		rc.respondCreateUpdateError(c, err, "Error adding reservation")
		return
	}

	events.BroadcastReservationCreate(*reservation)
	utils.InfoLogger.Printf("Reservation created: id=%d slot=%s %s guests=%d",
		reservation.ID, reservation.Date.Format(services.DateLayout), reservation.Time, reservation.Guests)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully",
		"reservation": reservation,
	})
}

// GetAllReservations -> list with optional status/date filters + pagination
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := rc.Service.List(services.ListFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching reservations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error fetching reservations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": result.Reservations,
		"totalPages":   result.TotalPages,
		"currentPage":  result.CurrentPage,
		"total":        result.Total,
	})
}

// GetReservationsByPhone -> all reservations for an exact phone match
func (rc *ReservationController) GetReservationsByPhone(c *gin.Context) {
	phone := c.Param("phone")

	reservations, err := rc.Service.ListByPhone(phone)
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching reservations by phone: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error fetching reservations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// GetReservationByID -> one reservation
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
			return
		}
		utils.ErrorLogger.Printf("Error fetching reservation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error fetching reservation",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// UpdateReservation -> partial update, slot re-checked when date/time move
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Guests   *int    `json:"guests"`
		Date     *string `json:"date"`
		Time     *string `json:"time"`
		Occasion *string `json:"occasion"`
		Notes    *string `json:"notes"`
		Status   *string `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	reservation, err := rc.Service.Update(id, services.ReservationUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Guests:   req.Guests,
		Date:     req.Date,
		Time:     req.Time,
		Occasion: req.Occasion,
		Notes:    req.Notes,
		Status:   req.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
			return
		}
		rc.respondCreateUpdateError(c, err, "Error updating reservation")
		return
	}

	events.BroadcastReservationUpdate(*reservation)
	utils.InfoLogger.Printf("Reservation %d updated (status=%s)", reservation.ID, reservation.Status)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation updated successfully",
		"reservation": reservation,
	})
}

// DeleteReservation -> hard delete
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	if err := rc.Service.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
			return
		}
		utils.ErrorLogger.Printf("Error deleting reservation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error deleting reservation",
			"error":   err.Error(),
		})
		return
	}

	events.BroadcastReservationDelete(id)
	utils.InfoLogger.Printf("Reservation %d deleted", id)

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

// reservationID parses the :id param. A malformed id is a 400, not a 404.
func (rc *ReservationController) reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservation ID"})
		return 0, false
	}
	return uint(id), true
}

func (rc *ReservationController) respondCreateUpdateError(c *gin.Context, err error, fallback string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation error",
			"errors":  ve.Messages(),
		})
	case errors.Is(err, services.ErrSlotUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "A reservation already exists for this date and time",
			"error":   "Time slot unavailable",
		})
	default:
		utils.ErrorLogger.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": fallback,
			"error":   err.Error(),
		})
	}
}
