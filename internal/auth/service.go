package auth

import (
	"context"
	"errors"
	"time"

	"delservice/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrSessionExpired     = errors.New("session expired")
)

// LookupUser resolves a staff login to its ID and stored password hash.
// Wired to the user repository at startup; a function type keeps this
// package free of a dependency on the user package.
type LookupUser func(ctx context.Context, login string) (userID int64, passwordHash string, err error)

type Service interface {
	Login(ctx context.Context, login, password string) (token string, err error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	repo   Repository
	lookup LookupUser
	secret string
}

func NewService(repo Repository, lookup LookupUser, secret string) Service {
	return &service{repo: repo, lookup: lookup, secret: secret}
}

// Login verifies credentials, creates a session row and returns the signed
// cookie value. Lookup failures and bad passwords are indistinguishable to
// the caller.
func (s *service) Login(ctx context.Context, login, password string) (string, error) {
	userID, hash, err := s.lookup(ctx, login)
	if err != nil {
		logger.FromCtx(ctx).Info("login rejected", zap.String("login", login))
		return "", ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, hash) {
		logger.FromCtx(ctx).Info("login rejected", zap.String("login", login))
		return "", ErrInvalidCredentials
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", err
	}

	return SignSessionToken(s.secret, session.ID.String(), userID, session.ExpiresAt)
}

// Authenticate checks the signed cookie and confirms the session row still
// exists and has not expired.
func (s *service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := ParseSessionToken(s.secret, token)
	if err != nil {
		return nil, err
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.repo.Delete(ctx, session.ID)
		return nil, ErrSessionExpired
	}

	return &Identity{UserID: session.UserID, SessionID: session.ID}, nil
}

// Logout deletes the session row; the signed cookie becomes useless even if
// the client keeps it.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := ParseSessionToken(s.secret, token)
	if err != nil {
		return nil // already unusable
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil
	}

	return s.repo.Delete(ctx, sessionID)
}
