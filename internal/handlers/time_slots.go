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

// TimeSlotRequest represents the request body for creating or updating a
// time slot. The order is a pointer so that 0 is accepted.
type TimeSlotRequest struct {
	AppointmentHour  string `json:"appointmentHour" binding:"required"`
	AppointmentOrder *int   `json:"appointmentOrder" binding:"required"`
}

// TimeSlotResult is the payload returned for slot mutations.
type TimeSlotResult struct {
	Success          bool   `json:"success"`
	AppointmentHour  string `json:"appointmentHour"`
	AppointmentOrder int    `json:"appointmentOrder"`
}

// CreateTimeSlot adds an hour slot to the catalog.
func (h *AppointmentHandler) CreateTimeSlot(c *gin.Context) {
	var req TimeSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	slot := models.AppointmentTimeSlot{
		AppointmentHour:  req.AppointmentHour,
		AppointmentOrder: *req.AppointmentOrder,
	}

	if err := h.DB.Create(&slot).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			utils.BadRequest(c, "A time slot with this order or hour already exists.")
			return
		}
		log.Error().Err(err).Msg("Failed to create time slot")
		utils.BadRequest(c, "Failed to create time slot.")
		return
	}

	c.JSON(http.StatusCreated, TimeSlotResult{
		Success:          true,
		AppointmentHour:  slot.AppointmentHour,
		AppointmentOrder: slot.AppointmentOrder,
	})
}

// UpdateTimeSlot changes the hour label or order of an existing slot.
func (h *AppointmentHandler) UpdateTimeSlot(c *gin.Context) {
	uid := c.Param("uid")

	var req TimeSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var slot models.AppointmentTimeSlot
	if err := h.DB.First(&slot, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Time slot not found.")
		} else {
			log.Error().Err(err).Msg("Failed to update time slot")
			utils.BadRequest(c, "Failed to update time slot.")
		}
		return
	}

	slot.AppointmentHour = req.AppointmentHour
	slot.AppointmentOrder = *req.AppointmentOrder
	if err := h.DB.Save(&slot).Error; err != nil {
		log.Error().Err(err).Msg("Failed to update time slot")
		utils.BadRequest(c, "Failed to update time slot.")
		return
	}

	c.JSON(http.StatusOK, TimeSlotResult{
		Success:          true,
		AppointmentHour:  slot.AppointmentHour,
		AppointmentOrder: slot.AppointmentOrder,
	})
}

// DeleteTimeSlot removes a slot from the catalog. Slots referenced by
// appointments are protected by the foreign key and fail with a generic
// error.
func (h *AppointmentHandler) DeleteTimeSlot(c *gin.Context) {
	uid := c.Param("uid")

	result := h.DB.Where("uid = ?", uid).Delete(&models.AppointmentTimeSlot{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete time slot")
		utils.BadRequest(c, "Failed to delete time slot.")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Time slot not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
