package auth

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session for a staff user.
type Session struct {
	ID        uuid.UUID
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Identity is the authenticated principal attached to a request context.
type Identity struct {
	UserID    int64
	SessionID uuid.UUID
}
