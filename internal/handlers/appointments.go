package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/utils"
)

// A patient may hold at most this many bookings per calendar date.
const dailyAppointmentCap = 2

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB       *gorm.DB
	Resolver models.PatientResolver
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, resolver models.PatientResolver) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Resolver: resolver}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	AppointmentDate        string `json:"appointmentDate" binding:"required"`
	FirstName              string `json:"firstName" binding:"required"`
	LastName               string `json:"lastName" binding:"required"`
	Sex                    string `json:"sex" binding:"required,oneof=male female"`
	AppointmentTimeSlotUID string `json:"appointmentTimeSlotUid" binding:"required"`
	Comment                string `json:"comment" binding:"required"`
	Birthday               string `json:"birthday" binding:"required"`
	FatherName             string `json:"fatherName" binding:"required"`
	IsNewPatient           bool   `json:"isNewPatient"`
	PhoneNumber            string `json:"phoneNumber"`
}

// CreateAppointmentResult is the payload returned for a successful booking.
type CreateAppointmentResult struct {
	Success           bool      `json:"success"`
	AppointmentNumber int       `json:"appointmentNumber"`
	AppointmentDate   time.Time `json:"appointmentDate"`
	AppointmentOrder  int       `json:"appointmentOrder"`
}

// CreateAppointment books an appointment, creating the patient record on the
// fly when the identity fields match nothing yet.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointmentDate, err := utils.ParseFlexibleDate(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment date. Please provide a valid date.")
		return
	}
	// Bookings are keyed by calendar date alone; whatever time of day the
	// client sent must not dodge the (date, slot) uniqueness check.
	appointmentDate = utils.StartOfDay(appointmentDate)

	var birthday *time.Time
	if b, err := utils.ParseFlexibleDate(req.Birthday); err == nil {
		birthday = &b
	}

	patient, err := h.Resolver.Resolve(h.DB, models.PatientIdentity{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Sex:         req.Sex,
		FatherName:  req.FatherName,
		PhoneNumber: req.PhoneNumber,
		Birthday:    birthday,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve patient")
		utils.BadRequest(c, "Failed to create appointment.")
		return
	}

	// Daily cap: counted before the insert, over the requested calendar date.
	dayStart, dayEnd := utils.DayWindow(appointmentDate)
	var existing int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("patient_uid = ? AND appointment_date >= ? AND appointment_date < ?", patient.UID, dayStart, dayEnd).
		Count(&existing).Error; err != nil {
		log.Error().Err(err).Msg("Failed to count existing appointments")
		utils.BadRequest(c, "Failed to create appointment.")
		return
	}
	if existing >= dailyAppointmentCap {
		utils.BadRequest(c, "A patient can only book up to 2 appointments per day.")
		return
	}

	var slotUID *string
	if req.AppointmentTimeSlotUID != "" {
		slotUID = &req.AppointmentTimeSlotUID
	}

	appointment := models.Appointment{
		PatientUID:             patient.UID,
		AppointmentTimeSlotUID: slotUID,
		AppointmentDate:        appointmentDate,
		AppointmentNumber:      rand.Intn(1000000),
		Comment:                req.Comment,
		IsNewPatient:           req.IsNewPatient,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create appointment")
		if utils.IsDuplicateKey(err) {
			utils.BadRequest(c, "An appointment already exists for this date and time slot.")
			return
		}
		utils.BadRequest(c, "Failed to create appointment.")
		return
	}

	// Slot order is display-only; a missing slot just reports 0.
	appointmentOrder := 0
	if slotUID != nil {
		var slot models.AppointmentTimeSlot
		if err := h.DB.First(&slot, "uid = ?", *slotUID).Error; err == nil {
			appointmentOrder = slot.AppointmentOrder
		}
	}

	c.JSON(http.StatusCreated, CreateAppointmentResult{
		Success:           true,
		AppointmentNumber: appointment.AppointmentNumber,
		AppointmentDate:   appointment.AppointmentDate,
		AppointmentOrder:  appointmentOrder,
	})
}

// GetAppointmentsByDate lists a day's appointments with their patient, slot
// and call-tracking records. The path parameter uses DD.MM.YYYY.
func (h *AppointmentHandler) GetAppointmentsByDate(c *gin.Context) {
	day, err := utils.ParseDottedDate(c.Param("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Expected DD.MM.YYYY")
		return
	}

	dayStart, dayEnd := utils.DayWindow(day)

	var appointments []models.Appointment
	if err := h.DB.
		Preload("Patient").Preload("TimeSlot").Preload("Management").
		Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayEnd).
		Find(&appointments).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch appointments")
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CallPatientRequest represents the request body for calling a patient.
type CallPatientRequest struct {
	AppointmentUID string `json:"appointmentUid" binding:"required"`
}

// CallPatientResult is the payload returned after a call-tracking update.
type CallPatientResult struct {
	Success        bool       `json:"success"`
	AppointmentUID string     `json:"appointmentUid"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
}

// CallPatient advances the call lifecycle of an appointment: the first call
// starts it, the second one finishes it. Further calls just re-stamp the end.
func (h *AppointmentHandler) CallPatient(c *gin.Context) {
	var req CallPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var management models.AppointmentManagement
	err := h.DB.Where("appointment_uid = ?", req.AppointmentUID).First(&management).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		management = models.AppointmentManagement{
			AppointmentUID: req.AppointmentUID,
			StartDate:      &now,
		}
		if err := h.DB.Create(&management).Error; err != nil {
			log.Error().Err(err).Msg("Failed to call patient")
			utils.BadRequest(c, "Failed to call patient.")
			return
		}
	case err != nil:
		log.Error().Err(err).Msg("Failed to call patient")
		utils.BadRequest(c, "Failed to call patient.")
		return
	default:
		now := time.Now()
		management.EndDate = &now
		if err := h.DB.Save(&management).Error; err != nil {
			log.Error().Err(err).Msg("Failed to call patient")
			utils.BadRequest(c, "Failed to call patient.")
			return
		}
	}

	c.JSON(http.StatusOK, CallPatientResult{
		Success:        true,
		AppointmentUID: management.AppointmentUID,
		StartDate:      management.StartDate,
		EndDate:        management.EndDate,
	})
}

// TodaySummaryResult summarizes today's appointment load for the waiting room
// display.
type TodaySummaryResult struct {
	TotalAppointments       int `json:"totalAppointments"`
	CompletedAppointments   int `json:"completedAppointments"`
	CurrentAppointmentOrder int `json:"currentAppointmentOrder"`
}

// GetTodayAppointmentSummary computes today's totals. The day window is UTC.
// completedAppointments counts calls that are in progress (started, not
// finished) - historical behavior the front-end depends on.
func (h *AppointmentHandler) GetTodayAppointmentSummary(c *gin.Context) {
	dayStart, dayEnd := utils.UTCDayWindow(time.Now())

	var appointments []models.Appointment
	if err := h.DB.
		Preload("Management").Preload("TimeSlot").
		Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayEnd).
		Find(&appointments).Error; err != nil {
		log.Error().Err(err).Msg("Failed to get appointment summary")
		utils.InternalServerError(c, "Failed to get appointment summary.")
		return
	}

	completed := 0
	var current *models.Appointment
	for i := range appointments {
		m := appointments[i].Management
		if m != nil && m.StartDate != nil && m.EndDate == nil {
			completed++
			if current == nil {
				current = &appointments[i]
			}
		}
	}

	currentOrder := 0
	if current != nil && current.TimeSlot != nil {
		currentOrder = current.TimeSlot.AppointmentOrder
	} else {
		// No call in progress: fall back to the highest slot order among
		// fully finished calls.
		best := -1
		for i := range appointments {
			m := appointments[i].Management
			slot := appointments[i].TimeSlot
			if m != nil && m.StartDate != nil && m.EndDate != nil && slot != nil && slot.AppointmentOrder > best {
				best = slot.AppointmentOrder
			}
		}
		if best >= 0 {
			currentOrder = best
		}
	}

	c.JSON(http.StatusOK, TodaySummaryResult{
		TotalAppointments:       len(appointments),
		CompletedAppointments:   completed,
		CurrentAppointmentOrder: currentOrder,
	})
}

// AvailableTimeSlotsResult is the payload for the availability query.
type AvailableTimeSlotsResult struct {
	Success            bool                         `json:"success"`
	AvailableTimeSlots []models.AppointmentTimeSlot `json:"availableTimeSlots"`
}

// GetAvailableTimeSlots returns the slots still bookable on the requested
// date. When the requested date is today (strict string match against the UTC
// date), slots whose hour is not at least an hour and a minute away are
// suppressed.
func (h *AppointmentHandler) GetAvailableTimeSlots(c *gin.Context) {
	rawDate := c.Query("date")
	if rawDate == "" {
		utils.BadRequest(c, "Date parameter is required.")
		return
	}

	day, err := utils.ParseFlexibleDate(rawDate)
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Please provide a valid date.")
		return
	}

	dayStart, dayEnd := utils.DayWindow(utils.StartOfDay(day))

	var bookedSlotUIDs []string
	if err := h.DB.Model(&models.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ? AND appointment_time_slot_uid IS NOT NULL", dayStart, dayEnd).
		Pluck("appointment_time_slot_uid", &bookedSlotUIDs).Error; err != nil {
		log.Error().Err(err).Msg("Failed to get available time slots")
		utils.BadRequest(c, "Database error while fetching available time slots.")
		return
	}

	query := h.DB.Order("appointment_order asc")
	if len(bookedSlotUIDs) > 0 {
		query = query.Where("uid NOT IN ?", bookedSlotUIDs)
	}

	var slots []models.AppointmentTimeSlot
	if err := query.Find(&slots).Error; err != nil {
		log.Error().Err(err).Msg("Failed to get available time slots")
		utils.BadRequest(c, "Database error while fetching available time slots.")
		return
	}

	now := time.Now()
	filtered := make([]models.AppointmentTimeSlot, 0, len(slots))
	applyTimeFilter := rawDate == now.UTC().Format("2006-01-02")
	for _, slot := range slots {
		if applyTimeFilter && !utils.SlotHourAfterBuffer(slot.AppointmentHour, now) {
			continue
		}
		filtered = append(filtered, slot)
	}

	c.JSON(http.StatusOK, AvailableTimeSlotsResult{
		Success:            true,
		AvailableTimeSlots: filtered,
	})
}

// PatientAppointmentsRequest identifies a patient by their natural key.
type PatientAppointmentsRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Birthday   string `json:"birthday" binding:"required"`
	FatherName string `json:"fatherName" binding:"required"`
}

// PatientAppointmentResult is one row of a patient's upcoming appointments.
type PatientAppointmentResult struct {
	AppointmentNumber   int       `json:"appointmentNumber"`
	AppointmentDate     time.Time `json:"appointmentDate"`
	AppointmentTimeSlot *string   `json:"appointmentTimeSlot"`
	ID                  string    `json:"id"`
}

// GetAppointmentsByPatient returns a patient's upcoming appointments that
// have not been called yet, newest first.
func (h *AppointmentHandler) GetAppointmentsByPatient(c *gin.Context) {
	var req PatientAppointmentsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	birthday, err := utils.ParseFlexibleDate(req.Birthday)
	if err != nil {
		utils.BadRequest(c, "Invalid birthday. Please provide a valid date.")
		return
	}

	var patient models.Patient
	err = h.DB.Where(
		"first_name = ? AND last_name = ? AND birthday = ? AND father_name = ?",
		req.FirstName, req.LastName, birthday, req.FatherName,
	).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			log.Error().Err(err).Msg("Failed to get appointment by patient")
			utils.BadRequest(c, "Failed to get appointment by patient.")
		}
		return
	}

	startOfToday := utils.StartOfDay(time.Now().UTC())

	var appointments []models.Appointment
	if err := h.DB.
		Preload("TimeSlot").Preload("Management").
		Where("patient_uid = ? AND appointment_date >= ?", patient.UID, startOfToday).
		Order("appointment_date desc").
		Find(&appointments).Error; err != nil {
		log.Error().Err(err).Msg("Failed to get appointment by patient")
		utils.BadRequest(c, "Failed to get appointment by patient.")
		return
	}

	results := make([]PatientAppointmentResult, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.Management != nil && appointment.Management.StartDate != nil {
			continue // already called
		}
		var hour *string
		if appointment.TimeSlot != nil {
			hour = &appointment.TimeSlot.AppointmentHour
		}
		results = append(results, PatientAppointmentResult{
			AppointmentNumber:   appointment.AppointmentNumber,
			AppointmentDate:     appointment.AppointmentDate,
			AppointmentTimeSlot: hour,
			ID:                  appointment.UID,
		})
	}

	c.JSON(http.StatusOK, results)
}

// DeleteAppointment soft-deletes an appointment; it disappears from every
// listing and frees its (date, slot) pair, but the row stays in the table.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	uid := c.Param("uid")

	result := h.DB.Where("uid = ?", uid).Delete(&models.Appointment{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete appointment")
		utils.BadRequest(c, "Failed to delete appointment.")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
