package models

// AppointmentTimeSlot is a bookable named hour of the day. AppointmentOrder
// drives display ordering and the "currently serving" number; both the hour
// label and the order are expected to be unique across the catalog.
type AppointmentTimeSlot struct {
	BaseModel
	AppointmentHour  string `gorm:"size:5;uniqueIndex;not null" json:"appointmentHour"`
	AppointmentOrder int    `gorm:"uniqueIndex" json:"appointmentOrder"`
}
