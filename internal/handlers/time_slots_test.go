package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/models"
)

func TestCreateTimeSlot(t *testing.T) {
	router, db, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPost, "/appointments/create-time-slot",
		map[string]any{"appointmentHour": "09:00", "appointmentOrder": 1}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "09:00", body["appointmentHour"])
	assert.Equal(t, float64(1), body["appointmentOrder"])

	var count int64
	require.NoError(t, db.Model(&models.AppointmentTimeSlot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateTimeSlotAcceptsOrderZero(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPost, "/appointments/create-time-slot",
		map[string]any{"appointmentHour": "08:00", "appointmentOrder": 0}, nil)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateTimeSlotRejectsDuplicates(t *testing.T) {
	router, db, _ := setupTestEnv(t)
	createSlot(t, db, "09:00", 1)

	// Same hour, different order.
	w := performRequest(router, http.MethodPost, "/appointments/create-time-slot",
		map[string]any{"appointmentHour": "09:00", "appointmentOrder": 2}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A time slot with this order or hour already exists.", decodeBody(t, w)["error"])

	// Same order, different hour.
	w = performRequest(router, http.MethodPost, "/appointments/create-time-slot",
		map[string]any{"appointmentHour": "10:00", "appointmentOrder": 1}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A time slot with this order or hour already exists.", decodeBody(t, w)["error"])
}

func TestUpdateTimeSlot(t *testing.T) {
	router, db, _ := setupTestEnv(t)
	slot := createSlot(t, db, "09:00", 1)

	w := performRequest(router, http.MethodPut, "/appointments/update-time-slot/"+slot.UID,
		map[string]any{"appointmentHour": "09:30", "appointmentOrder": 5}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "09:30", body["appointmentHour"])
	assert.Equal(t, float64(5), body["appointmentOrder"])

	var reloaded models.AppointmentTimeSlot
	require.NoError(t, db.First(&reloaded, "uid = ?", slot.UID).Error)
	assert.Equal(t, "09:30", reloaded.AppointmentHour)
	assert.Equal(t, 5, reloaded.AppointmentOrder)
}

func TestUpdateTimeSlotNotFound(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodPut, "/appointments/update-time-slot/nope",
		map[string]any{"appointmentHour": "09:30", "appointmentOrder": 5}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Time slot not found.", decodeBody(t, w)["error"])
}

func TestDeleteTimeSlot(t *testing.T) {
	router, db, _ := setupTestEnv(t)
	slot := createSlot(t, db, "09:00", 1)

	w := performRequest(router, http.MethodDelete, "/appointments/delete-time-slot/"+slot.UID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	// Gone from the catalog and from availability.
	w = performRequest(router, http.MethodGet, "/appointments/get-available-time-slots?date=2030-01-10", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["availableTimeSlots"])
}

func TestDeleteTimeSlotNotFound(t *testing.T) {
	router, _, _ := setupTestEnv(t)

	w := performRequest(router, http.MethodDelete, "/appointments/delete-time-slot/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Time slot not found.", decodeBody(t, w)["error"])
}
