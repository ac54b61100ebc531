package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// PatientIdentity carries the fields a booking request identifies a patient by.
type PatientIdentity struct {
	FirstName   string
	LastName    string
	Sex         string
	FatherName  string
	PhoneNumber string
	Birthday    *time.Time
}

// PatientResolver maps a booking's identity fields onto a Patient row.
// Which fields form the natural key is a business decision that varies per
// deployment, so the strategy is pluggable.
type PatientResolver interface {
	Resolve(db *gorm.DB, identity PatientIdentity) (*Patient, error)
}

// NaturalKeyResolver matches on the (sex, firstName, lastName, fatherName)
// tuple and creates the patient on a miss.
type NaturalKeyResolver struct{}

func (NaturalKeyResolver) Resolve(db *gorm.DB, identity PatientIdentity) (*Patient, error) {
	var patient Patient
	err := db.Where(
		"sex = ? AND first_name = ? AND last_name = ? AND father_name = ?",
		identity.Sex, identity.FirstName, identity.LastName, identity.FatherName,
	).First(&patient).Error
	if err == nil {
		return &patient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	patient = Patient{
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		Sex:         identity.Sex,
		Birthday:    identity.Birthday,
		FatherName:  identity.FatherName,
		PhoneNumber: identity.PhoneNumber,
	}
	if err := db.Create(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// PhoneUpsertResolver keys patients by phone number and refreshes the mutable
// identity fields on every booking.
type PhoneUpsertResolver struct{}

func (PhoneUpsertResolver) Resolve(db *gorm.DB, identity PatientIdentity) (*Patient, error) {
	var patient Patient
	err := db.Where("phone_number = ?", identity.PhoneNumber).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		patient = Patient{
			FirstName:   identity.FirstName,
			LastName:    identity.LastName,
			Sex:         identity.Sex,
			Birthday:    identity.Birthday,
			FatherName:  identity.FatherName,
			PhoneNumber: identity.PhoneNumber,
		}
		if err := db.Create(&patient).Error; err != nil {
			return nil, err
		}
		return &patient, nil
	}
	if err != nil {
		return nil, err
	}

	patient.FirstName = identity.FirstName
	patient.LastName = identity.LastName
	patient.Sex = identity.Sex
	patient.FatherName = identity.FatherName
	if identity.Birthday != nil {
		patient.Birthday = identity.Birthday
	}
	if err := db.Save(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// ResolverFor picks the resolution strategy for the configured mode.
// Unknown modes fall back to the natural-key strategy.
func ResolverFor(mode string) PatientResolver {
	if mode == "phone" {
		return PhoneUpsertResolver{}
	}
	return NaturalKeyResolver{}
}
