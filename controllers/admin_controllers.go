package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/brew-bliss-cafe/models"
	"github.com/yeremiapane/brew-bliss-cafe/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetReservationStats -> dashboard numbers over the reservation collection
func (ac *AdminController) GetReservationStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
		return
	}
	if role, ok := roleInterface.(string); !ok || role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	nextWeek := today.AddDate(0, 0, 7)

	var stats struct {
		TotalReservations int64 `json:"total_reservations"`
		TodayReservations int64 `json:"today_reservations"`
		UpcomingWeek      int64 `json:"upcoming_week"`
		StatusStats       struct {
			Pending   int64 `json:"pending"`
			Confirmed int64 `json:"confirmed"`
			Cancelled int64 `json:"cancelled"`
			Completed int64 `json:"completed"`
		} `json:"status_stats"`
		GuestsToday int64 `json:"guests_today"`
	}

	ac.DB.Model(&models.Reservation{}).Count(&stats.TotalReservations)
	ac.DB.Model(&models.Reservation{}).
		Where("date >= ? AND date < ?", today, tomorrow).
		Count(&stats.TodayReservations)
	ac.DB.Model(&models.Reservation{}).
		Where("date >= ? AND date < ? AND status IN ?", today, nextWeek, models.ActiveStatuses).
		Count(&stats.UpcomingWeek)

	ac.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusPending).Count(&stats.StatusStats.Pending)
	ac.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusConfirmed).Count(&stats.StatusStats.Confirmed)
	ac.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusCancelled).Count(&stats.StatusStats.Cancelled)
	ac.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusCompleted).Count(&stats.StatusStats.Completed)

	ac.DB.Model(&models.Reservation{}).
		Select("COALESCE(SUM(guests), 0)").
		Where("date >= ? AND date < ? AND status IN ?", today, tomorrow, models.ActiveStatuses).
		Scan(&stats.GuestsToday)

	utils.RespondJSON(c, http.StatusOK, "Reservation stats", stats)
}
