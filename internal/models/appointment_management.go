package models

import (
	"time"
)

// AppointmentManagement tracks when staff started and finished calling the
// patient of an appointment. Absence of a row means the patient has not been
// called yet; StartDate without EndDate means the call is in progress.
type AppointmentManagement struct {
	BaseModel
	AppointmentUID string     `gorm:"size:36;uniqueIndex;not null" json:"appointmentUid"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	IsCanceled     bool       `gorm:"default:false" json:"isCanceled"`
}
