package models

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Appointment links a patient to a calendar date and, optionally, a bookable
// time slot. AppointmentDate always carries midnight UTC; the time of day is
// never part of an appointment's identity. AppointmentNumber is a random
// display value shown to the patient at the desk; it is not unique and must
// never be used as a key.
//
// The soft-delete marker is part of the uniqueness index: live rows carry a
// zero marker, so only one live booking can hold a (date, slot) pair, and
// canceling a booking frees the pair for rebooking.
type Appointment struct {
	BaseModel
	PatientUID             string                `gorm:"size:36;index;not null" json:"patientUid"`
	AppointmentTimeSlotUID *string               `gorm:"size:36;uniqueIndex:idx_appointment_date_slot" json:"appointmentTimeSlotUid"`
	AppointmentDate        time.Time             `gorm:"uniqueIndex:idx_appointment_date_slot;index" json:"appointmentDate"`
	AppointmentNumber      int                   `json:"appointmentNumber"`
	Comment                string                `gorm:"size:255" json:"comment"`
	IsNewPatient           bool                  `gorm:"default:false" json:"isNewPatient"`
	DeletedAt              soft_delete.DeletedAt `gorm:"uniqueIndex:idx_appointment_date_slot" json:"-"`

	// Relations
	Patient    *Patient               `gorm:"foreignKey:PatientUID" json:"patient,omitempty"`
	TimeSlot   *AppointmentTimeSlot   `gorm:"foreignKey:AppointmentTimeSlotUID" json:"timeSlot,omitempty"`
	Management *AppointmentManagement `gorm:"foreignKey:AppointmentUID" json:"management,omitempty"`
}
