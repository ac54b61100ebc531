package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/utils"
)

// PatientHandler handles patient directory requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// CreatePatientRequest represents the request body for creating a patient.
type CreatePatientRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Sex         string `json:"sex" binding:"required,oneof=male female"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Birthday    string `json:"birthday"`
	FatherName  string `json:"fatherName"`
}

// UpdatePatientRequest represents the request body for updating a patient.
// All fields are optional; zero values leave the column untouched.
type UpdatePatientRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Sex         string `json:"sex"`
	PhoneNumber string `json:"phoneNumber"`
	Birthday    string `json:"birthday"`
	FatherName  string `json:"fatherName"`
}

// GetPatients lists every patient in the directory.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Find(&patients).Error; err != nil {
		log.Error().Err(err).Msg("Failed to get patients")
		utils.InternalServerError(c, "Failed to get patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatientByID fetches one patient with their appointments (including
// slots), diagnoses and detail records.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id := c.Param("id")

	var patient models.Patient
	err := h.DB.
		Preload("Appointments.TimeSlot").
		Preload("Diagnoses").
		Preload("Details").
		First(&patient, "uid = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			log.Error().Err(err).Msg("Failed to get patient by ID")
			utils.InternalServerError(c, "Failed to get patient by ID")
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// CreatePatient adds a patient to the directory.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Sex:         req.Sex,
		PhoneNumber: req.PhoneNumber,
		FatherName:  req.FatherName,
	}
	if req.Birthday != "" {
		birthday, err := utils.ParseFlexibleDate(req.Birthday)
		if err != nil {
			utils.BadRequest(c, "Invalid birthday. Please provide a valid date.")
			return
		}
		patient.Birthday = &birthday
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create patient")
		utils.InternalServerError(c, "Failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// UpdatePatient changes a patient's identity fields.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id := c.Param("id")

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "uid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			log.Error().Err(err).Msg("Failed to update patient")
			utils.InternalServerError(c, "Failed to update patient")
		}
		return
	}

	applyPatientUpdates(&patient, &req)

	if req.Birthday != "" {
		birthday, err := utils.ParseFlexibleDate(req.Birthday)
		if err != nil {
			utils.BadRequest(c, "Invalid birthday. Please provide a valid date.")
			return
		}
		patient.Birthday = &birthday
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		log.Error().Err(err).Msg("Failed to update patient")
		utils.InternalServerError(c, "Failed to update patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}

func applyPatientUpdates(patient *models.Patient, req *UpdatePatientRequest) {
	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Sex != "" {
		patient.Sex = req.Sex
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.FatherName != "" {
		patient.FatherName = req.FatherName
	}
}

// DeletePatient removes a patient from the directory.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Where("uid = ?", id).Delete(&models.Patient{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete patient")
		utils.InternalServerError(c, "Failed to delete patient")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
