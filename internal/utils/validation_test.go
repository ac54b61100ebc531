package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedPayload struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validatedPayload{Email: "a@x.com", Name: "Anna"}))
	assert.Error(t, Validate(validatedPayload{Email: "not-an-email", Name: "Anna"}))
}

func TestFormatValidationError(t *testing.T) {
	err := Validate(validatedPayload{})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Email")
	assert.Contains(t, msg, "Name")

	assert.Equal(t, "boom", FormatValidationError(errors.New("boom")))
}
