package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/brew-bliss-cafe/controllers"
	"github.com/yeremiapane/brew-bliss-cafe/models"
	"github.com/yeremiapane/brew-bliss-cafe/utils"
)

func setupTestDBForReservations(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Reservation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	ctrl := controllers.NewReservationController(db)
	api := r.Group("/api")
	api.POST("/reservations", ctrl.CreateReservation)
	api.GET("/reservations", ctrl.GetAllReservations)
	api.GET("/reservations/phone/:phone", ctrl.GetReservationsByPhone)
	api.GET("/reservations/:id", ctrl.GetReservationByID)
	api.PUT("/reservations/:id", ctrl.UpdateReservation)
	api.DELETE("/reservations/:id", ctrl.DeleteReservation)
	api.GET("/health", controllers.HealthCheck)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		assert.NoError(t, err)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func sampleReservation() map[string]interface{} {
	return map[string]interface{}{
		"name":   "John Doe",
		"email":  "john@x.com",
		"phone":  "1234567890",
		"guests": 4,
		"date":   "2099-02-15",
		"time":   "19:00",
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", sampleReservation())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Reservation created successfully", resp["message"])

	reservation := resp["reservation"].(map[string]interface{})
	assert.Equal(t, "pending", reservation["status"])
	assert.Equal(t, "John Doe", reservation["name"])
	assert.NotZero(t, reservation["id"])

	// repeating the exact same call hits the slot conflict
	w, resp = doJSON(t, r, http.MethodPost, "/api/reservations", sampleReservation())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A reservation already exists for this date and time", resp["message"])
	assert.Equal(t, "Time slot unavailable", resp["error"])
}

func TestCreateReservationValidation(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	body := sampleReservation()
	body["guests"] = 21
	body["time"] = "25:00"

	w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation error", resp["message"])

	errs := resp["errors"].([]interface{})
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "Maximum 20 guests allowed")
	assert.Contains(t, errs, "Please enter a valid time in HH:MM format")
}

func TestGetReservationByIDErrors(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	// malformed id is a 400, not a 404
	w, resp := doJSON(t, r, http.MethodGet, "/api/reservations/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid reservation ID", resp["message"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/reservations/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation not found", resp["message"])
}

func TestUpdateReservationEndpoint(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	_, resp := doJSON(t, r, http.MethodPost, "/api/reservations", sampleReservation())
	firstID := resp["reservation"].(map[string]interface{})["id"].(float64)

	second := sampleReservation()
	second["time"] = "20:00"
	_, resp = doJSON(t, r, http.MethodPost, "/api/reservations", second)
	secondID := resp["reservation"].(map[string]interface{})["id"].(float64)

	// moving onto an occupied slot fails
	w, resp := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reservations/%.0f", secondID),
		map[string]interface{}{"time": "19:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Time slot unavailable", resp["error"])

	// updating unrelated fields succeeds
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reservations/%.0f", firstID),
		map[string]interface{}{"guests": 6, "notes": "anniversary dinner"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reservation updated successfully", resp["message"])
	updated := resp["reservation"].(map[string]interface{})
	assert.EqualValues(t, 6, updated["guests"])
	assert.Equal(t, "anniversary dinner", updated["notes"])

	w, resp = doJSON(t, r, http.MethodPut, "/api/reservations/9999",
		map[string]interface{}{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation not found", resp["message"])
}

func TestDeleteReservationEndpoint(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	_, resp := doJSON(t, r, http.MethodPost, "/api/reservations", sampleReservation())
	id := resp["reservation"].(map[string]interface{})["id"].(float64)

	w, resp := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/reservations/%.0f", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reservation deleted successfully", resp["message"])

	w, resp = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/reservations/%.0f", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation not found", resp["message"])
}

func TestListReservationsEndpoint(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	for _, hhmm := range []string{"20:00", "18:00", "19:00"} {
		body := sampleReservation()
		body["time"] = hhmm
		w, _ := doJSON(t, r, http.MethodPost, "/api/reservations", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/reservations?date=2099-02-15&limit=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, resp["total"])
	assert.EqualValues(t, 2, resp["totalPages"])
	assert.EqualValues(t, 1, resp["currentPage"])

	reservations := resp["reservations"].([]interface{})
	assert.Len(t, reservations, 2)
	assert.Equal(t, "18:00", reservations[0].(map[string]interface{})["time"])
	assert.Equal(t, "19:00", reservations[1].(map[string]interface{})["time"])
}

func TestListByPhoneEndpoint(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	body := sampleReservation()
	w, _ := doJSON(t, r, http.MethodPost, "/api/reservations", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	other := sampleReservation()
	other["phone"] = "5550001111"
	other["time"] = "20:00"
	w, _ = doJSON(t, r, http.MethodPost, "/api/reservations", other)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/api/reservations/phone/1234567890", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, resp["count"])
	reservations := resp["reservations"].([]interface{})
	assert.Len(t, reservations, 1)
	assert.Equal(t, "1234567890", reservations[0].(map[string]interface{})["phone"])
}

func TestHealthEndpoint(t *testing.T) {
	utils.InitLogger()
	r := setupReservationRouter(setupTestDBForReservations(t))

	w, resp := doJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Brew Bliss Cafe API is running", resp["message"])
	assert.Equal(t, "healthy", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}
