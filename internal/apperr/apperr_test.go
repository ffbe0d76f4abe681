package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	ve := NewValidation().Add("email", "invalid email").Add("phone", "required")

	assert.True(t, ve.HasErrors())
	assert.Equal(t, "invalid email", ve.Fields["email"])
	assert.Equal(t, "validation failed: email, phone", ve.Error())

	t.Run("detected through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("saving client: %w", ve)
		assert.True(t, IsValidation(wrapped))

		got, ok := AsValidation(wrapped)
		assert.True(t, ok)
		assert.Equal(t, ve.Fields, got.Fields)
	})
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("order", 42)
	assert.Equal(t, "order #42 not found", err.Error())
	assert.True(t, IsNotFound(fmt.Errorf("loading: %w", err)))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
}

func TestConflictError(t *testing.T) {
	err := Conflict("payment method is referenced by existing orders")
	assert.True(t, IsConflict(err))
	assert.False(t, IsConflict(NotFound("order", 1)))
}

func TestDependencyUnavailableError(t *testing.T) {
	cause := fmt.Errorf("font missing")
	err := DependencyUnavailable("pdf renderer", cause)

	assert.True(t, IsDependencyUnavailable(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pdf renderer")
}
