package validation_test

import (
	"errors"
	"testing"

	"sports-portal/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCNIC(t *testing.T) {
	accepted := []string{"12345-1234567-1", "00000-0000000-0", "99999-9999999-9"}
	for _, s := range accepted {
		assert.NoError(t, validation.ValidateCNIC("cnic", s), s)
	}

	rejected := []string{
		"", "1234512345671", "12345-123456-1", "123456-1234567-1", "12345-1234567-12",
		"12345 1234567 1", "1234a-1234567-1", " 12345-1234567-1", "12345-1234567-1\n",
	}
	for _, s := range rejected {
		err := validation.ValidateCNIC("cnic", s)
		var fe *validation.FormatError
		require.True(t, errors.As(err, &fe), s)
		assert.Equal(t, "cnic", fe.Field)
	}
}

func TestValidateWhatsApp(t *testing.T) {
	assert.NoError(t, validation.ValidateWhatsApp("whatsapp_number", "+923001234567"))
	assert.NoError(t, validation.ValidateWhatsApp("whatsapp_number", "+92 300 1234567"))

	for _, s := range []string{"03001234567", "+924001234567", "+92300123456", "+9230012345678", "+92-300-1234567"} {
		var fe *validation.FormatError
		require.True(t, errors.As(validation.ValidateWhatsApp("whatsapp_number", s), &fe), s)
	}
}

func TestValidateDisability(t *testing.T) {
	var me *validation.MissingFieldError
	require.True(t, errors.As(validation.ValidateDisability("Yes", ""), &me))
	assert.Equal(t, "disability_detail", me.Field)
	require.True(t, errors.As(validation.ValidateDisability("Yes", "   "), &me))

	assert.NoError(t, validation.ValidateDisability("Yes", "Partial hearing loss"))
	assert.NoError(t, validation.ValidateDisability("No", ""))
	assert.NoError(t, validation.ValidateDisability("", ""))
}

func TestValidatePasswordConfirmation(t *testing.T) {
	assert.NoError(t, validation.ValidatePasswordConfirmation("s3cret-pass", "s3cret-pass"))

	var mm *validation.MismatchError
	require.True(t, errors.As(validation.ValidatePasswordConfirmation("s3cret-pass", "s3cret-Pass"), &mm))
	assert.Equal(t, "confirm_password", mm.Field)
}

func TestErrors_CollectsEveryViolation(t *testing.T) {
	var errs validation.Errors
	require.NoError(t, errs.Err())

	errs.Add(validation.ValidateCNIC("cnic", "bad"))
	errs.Add(validation.ValidateCNIC("father_cnic", "12345-1234567-1"))
	errs.Add(validation.ValidatePasswordConfirmation("a", "b"))
	errs.Add(validation.ValidateRange("height", 9.5, 3, 8))

	require.Error(t, errs.Err())
	assert.Len(t, errs, 3)
	assert.True(t, errs.Has("cnic"))
	assert.False(t, errs.Has("father_cnic"))
	assert.True(t, errs.Has("confirm_password"))
	assert.True(t, errs.Has("height"))

	byField := errs.ByField()
	assert.Contains(t, byField["cnic"][0], "12345-1234567-1")
}

type signup struct {
	Email  string  `json:"email" validate:"required,email"`
	Name   string  `json:"first_name" validate:"required,max=5"`
	Weight float64 `json:"weight" validate:"min=30"`
}

func TestStruct_MapsTagsToFieldErrors(t *testing.T) {
	v := validation.NewValidator()

	errs := validation.Struct(v, &signup{Email: "not-an-email", Name: "", Weight: 10})
	require.Len(t, errs, 3)

	var missing *validation.MissingFieldError
	require.True(t, errors.As(errs[1], &missing))
	assert.Equal(t, "first_name", missing.Field)
	assert.True(t, errs.Has("email"))
	assert.True(t, errs.Has("weight"))

	assert.Empty(t, validation.Struct(v, &signup{Email: "a@x.com", Name: "Ali", Weight: 60}))
}
