package models

import (
	"time"
)

// Patient is an identity record, created lazily when someone books their
// first appointment or explicitly through the patients endpoints.
type Patient struct {
	BaseModel
	FirstName   string     `gorm:"size:100;not null" json:"firstName"`
	LastName    string     `gorm:"size:100;not null" json:"lastName"`
	Sex         string     `gorm:"size:10" json:"sex"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	FatherName  string     `gorm:"size:100" json:"fatherName,omitempty"`
	PhoneNumber string     `gorm:"size:30;index" json:"phoneNumber,omitempty"`

	// Relations
	Appointments []Appointment      `gorm:"foreignKey:PatientUID" json:"appointments,omitempty"`
	Diagnoses    []PatientDiagnosis `gorm:"foreignKey:PatientUID" json:"diagnoses,omitempty"`
	Details      []PatientDetail    `gorm:"foreignKey:PatientUID" json:"details,omitempty"`
}

// PatientDiagnosis is a clinical note attached to a patient's chart.
type PatientDiagnosis struct {
	BaseModel
	PatientUID  string     `gorm:"size:36;index;not null" json:"patientUid"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DiagnosedAt *time.Time `json:"diagnosedAt,omitempty"`
}

// PatientDetail is a free-form key/value record on a patient's chart
// (allergies, insurance number and the like).
type PatientDetail struct {
	BaseModel
	PatientUID string `gorm:"size:36;index;not null" json:"patientUid"`
	Key        string `gorm:"size:100;not null" json:"key"`
	Value      string `gorm:"size:255" json:"value"`
}
