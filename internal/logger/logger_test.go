package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProductionAndDevelopment(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		Init(env)
		require.NotNil(t, L())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	Init("development")

	// Without a request id FromCtx falls back to the global logger.
	assert.Equal(t, L(), FromCtx(context.Background()))

	// With one, it returns a child logger carrying the field.
	ctx := WithRequestID(context.Background(), "req-456")
	assert.NotEqual(t, L(), FromCtx(ctx))
}
