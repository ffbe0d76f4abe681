package form

import (
	"testing"

	"delservice/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	FullName string `form:"full_name" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email"`
	Rating   int    `form:"rating" validate:"gte=1,lte=5"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct returns nil", func(t *testing.T) {
		ve := Validate(sampleForm{FullName: "Ivan Petrov", Email: "ivan@example.com", Rating: 4})
		assert.Nil(t, ve)
	})

	t.Run("errors keyed by form tag", func(t *testing.T) {
		ve := Validate(sampleForm{Email: "not-an-email", Rating: 9})
		require.NotNil(t, ve)

		assert.Equal(t, "This field is required", ve.Fields["full_name"])
		assert.Equal(t, "Enter a valid email address", ve.Fields["email"])
		assert.Equal(t, "Must be at most 5", ve.Fields["rating"])
	})
}

func TestParseDecimal(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ve := apperr.NewValidation()
		d := ParseDecimal(ve, "price", " 150.50 ")

		assert.False(t, ve.HasErrors())
		assert.True(t, d.Equal(decimal.RequireFromString("150.50")))
	})

	t.Run("Empty", func(t *testing.T) {
		ve := apperr.NewValidation()
		ParseDecimal(ve, "price", "")
		assert.Equal(t, "This field is required", ve.Fields["price"])
	})

	t.Run("Garbage", func(t *testing.T) {
		ve := apperr.NewValidation()
		ParseDecimal(ve, "price", "abc")
		assert.Equal(t, "Enter a valid number", ve.Fields["price"])
	})
}

func TestParseOptionalDecimal(t *testing.T) {
	ve := apperr.NewValidation()

	assert.Nil(t, ParseOptionalDecimal(ve, "latitude", ""))
	assert.False(t, ve.HasErrors())

	d := ParseOptionalDecimal(ve, "latitude", "55.7558000")
	require.NotNil(t, d)
	assert.True(t, d.Equal(decimal.RequireFromString("55.7558")))
}

func TestParseDate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ve := apperr.NewValidation()
		d := ParseDate(ve, "hire_date", "2024-03-15")

		assert.False(t, ve.HasErrors())
		assert.Equal(t, 2024, d.Year())
	})

	t.Run("BadFormat", func(t *testing.T) {
		ve := apperr.NewValidation()
		ParseDate(ve, "hire_date", "15.03.2024")
		assert.Equal(t, "Enter a valid date (YYYY-MM-DD)", ve.Fields["hire_date"])
	})
}

func TestParseOptionalDate(t *testing.T) {
	ve := apperr.NewValidation()

	assert.Nil(t, ParseOptionalDate(ve, "date_from", ""))

	d := ParseOptionalDate(ve, "date_from", "2024-01-01")
	require.NotNil(t, d)
	assert.False(t, ve.HasErrors())
}
