package models

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func resolverTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func annaIdentity() PatientIdentity {
	birthday := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	return PatientIdentity{
		FirstName:   "Anna",
		LastName:    "Kovacs",
		Sex:         "female",
		FatherName:  "Peter",
		PhoneNumber: "+36 20 123 4567",
		Birthday:    &birthday,
	}
}

func TestNaturalKeyResolverCreatesOnMiss(t *testing.T) {
	db := resolverTestDB(t)
	resolver := NaturalKeyResolver{}

	patient, err := resolver.Resolve(db, annaIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, patient.UID)

	again, err := resolver.Resolve(db, annaIdentity())
	require.NoError(t, err)
	assert.Equal(t, patient.UID, again.UID)

	var count int64
	require.NoError(t, db.Model(&Patient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNaturalKeyResolverDistinguishesFatherName(t *testing.T) {
	db := resolverTestDB(t)
	resolver := NaturalKeyResolver{}

	first, err := resolver.Resolve(db, annaIdentity())
	require.NoError(t, err)

	other := annaIdentity()
	other.FatherName = "Istvan"
	second, err := resolver.Resolve(db, other)
	require.NoError(t, err)

	assert.NotEqual(t, first.UID, second.UID)
}

func TestPhoneUpsertResolverRefreshesFields(t *testing.T) {
	db := resolverTestDB(t)
	resolver := PhoneUpsertResolver{}

	patient, err := resolver.Resolve(db, annaIdentity())
	require.NoError(t, err)

	changed := annaIdentity()
	changed.FirstName = "Anne"
	updated, err := resolver.Resolve(db, changed)
	require.NoError(t, err)

	assert.Equal(t, patient.UID, updated.UID)
	assert.Equal(t, "Anne", updated.FirstName)

	var count int64
	require.NoError(t, db.Model(&Patient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolverFor(t *testing.T) {
	assert.IsType(t, PhoneUpsertResolver{}, ResolverFor("phone"))
	assert.IsType(t, NaturalKeyResolver{}, ResolverFor("natural"))
	assert.IsType(t, NaturalKeyResolver{}, ResolverFor(""))
}
