// Package form glues echo form binding, validator/v10 tag constraints and the
// field-level error reporting the screens render. Static constraints live in
// struct tags; anything dynamic (live choice sets, decimal parsing) is checked
// explicitly by the owning service and appended to the same ValidationError.
package form

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"delservice/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the form field name, not the Go struct field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// Validate runs the static tag constraints of a form struct and collects the
// failures into a ValidationError. Returns nil when the struct is valid.
func Validate(s any) *apperr.ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	ve := apperr.NewValidation()

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		ve.Add("_form", "Invalid input")
		return ve
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			ve.Add(fe.Field(), message(fe))
		}
	}

	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return "Value is too long (max " + fe.Param() + ")"
	case "min":
		return "Value is too short (min " + fe.Param() + ")"
	case "gte":
		return "Must be at least " + fe.Param()
	case "lte":
		return "Must be at most " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "oneof":
		return "Select a valid choice"
	default:
		return "Invalid value"
	}
}

// ParseDecimal parses a required decimal field, recording a field error on
// failure. The zero value is returned on failure so callers can keep going
// and collect every error in one pass.
func ParseDecimal(ve *apperr.ValidationError, field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ve.Add(field, "This field is required")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		ve.Add(field, "Enter a valid number")
		return decimal.Zero
	}
	return d
}

// ParseOptionalDecimal parses an optional decimal field; empty input yields nil.
func ParseOptionalDecimal(ve *apperr.ValidationError, field, raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		ve.Add(field, "Enter a valid number")
		return nil
	}
	return &d
}

// ParseDate parses a required yyyy-mm-dd field.
func ParseDate(ve *apperr.ValidationError, field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ve.Add(field, "This field is required")
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		ve.Add(field, "Enter a valid date (YYYY-MM-DD)")
		return time.Time{}
	}
	return t
}

// ParseOptionalDate parses an optional yyyy-mm-dd field; empty input yields nil.
func ParseOptionalDate(ve *apperr.ValidationError, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		ve.Add(field, "Enter a valid date (YYYY-MM-DD)")
		return nil
	}
	return &t
}
