package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Category string  `json:"categoryId" validate:"course_category"`
	Class    string  `json:"class" validate:"course_class"`
	Role     string  `json:"role" validate:"omitempty,admin_role"`
	Language string  `json:"preferredLanguage" validate:"contact_language"`
	Contact  string  `json:"category" validate:"contact_category"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func TestDomainRules(t *testing.T) {
	valid := sample{
		Category: "math",
		Class:    "5th Class",
		Language: "english",
		Contact:  "छात्र / Student",
	}
	require.NoError(t, validate.Struct(valid))

	invalid := sample{
		Category: "art",
		Class:    "13th Class",
		Role:     "owner",
		Language: "french",
		Contact:  "Alumni",
		Price:    -1,
	}
	err := validate.Struct(invalid)
	require.Error(t, err)

	fields, ok := FormatValidationErrors(err)
	require.True(t, ok)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	assert.Len(t, byField, 6)
	assert.Contains(t, byField["categoryId"], "hindi, english, math, science, computer")
	assert.Contains(t, byField["class"], "1st Class to 12th Class")
	assert.Contains(t, byField["role"], "admin or superadmin")
	assert.Contains(t, byField["preferredLanguage"], "hindi or english")
	assert.Contains(t, byField["price"], "greater than or equal to 0")
}

func TestFormatValidationErrors_NotValidation(t *testing.T) {
	_, ok := FormatValidationErrors(errors.New("unexpected EOF"))
	assert.False(t, ok)
}

func TestRegisterGinValidators(t *testing.T) {
	require.NoError(t, RegisterGinValidators())
	require.NoError(t, RegisterGinValidators())
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("asha@example.com"))
	assert.False(t, IsEmail("asha@"))
	assert.False(t, IsEmail(""))
}

func TestMaxLengthMessage(t *testing.T) {
	type bounded struct {
		Mobile string `json:"mobile" validate:"max=20"`
	}
	err := validate.Struct(bounded{Mobile: "+91 98765 43210 ext 12"})
	require.Error(t, err)

	fields, ok := FormatValidationErrors(err)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "mobile", fields[0].Field)
	assert.Equal(t, "mobile must be at most 20 characters", fields[0].Message)

	// Devanagari counts by character, matching VARCHAR semantics
	require.NoError(t, validate.Struct(bounded{Mobile: "९८७६५४३२१०९८७६५४३२१०"}))
}
