package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/config"
	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/routes"
	"clinic-scheduler-server/internal/utils"
)

func setupTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{
		Port:                 "0",
		Origin:               "http://localhost",
		Environment:          "test",
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 60,
		PatientResolution:    config.ResolutionNaturalKey,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)
	return router, db, cfg
}

func performRequest(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

var userSeq int

func staffToken(t *testing.T, db *gorm.DB, cfg *config.Config, admin bool) string {
	t.Helper()
	userSeq++
	user := models.User{
		Email:     fmt.Sprintf("staff%d@clinic.test", userSeq),
		Username:  fmt.Sprintf("staff%d@clinic.test", userSeq),
		FirstName: "Desk",
		LastName:  "Staff",
		IsAdmin:   admin,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(&user, cfg)
	require.NoError(t, err)
	return token
}

func createSlot(t *testing.T, db *gorm.DB, hour string, order int) models.AppointmentTimeSlot {
	t.Helper()
	slot := models.AppointmentTimeSlot{AppointmentHour: hour, AppointmentOrder: order}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func bookingBody(date, slotUID string) map[string]any {
	return map[string]any{
		"appointmentDate":        date,
		"firstName":              "Anna",
		"lastName":               "Kovacs",
		"sex":                    "female",
		"appointmentTimeSlotUid": slotUID,
		"comment":                "routine checkup",
		"birthday":               "1990-05-01",
		"fatherName":             "Peter",
		"isNewPatient":           true,
	}
}
