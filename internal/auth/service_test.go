package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, session *Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

const testSecret = "service-test-secret"

func lookupFixed(userID int64, password string) LookupUser {
	hash, _ := HashPassword(password)
	return func(ctx context.Context, login string) (int64, string, error) {
		if login == "manager" {
			return userID, hash, nil
		}
		return 0, "", errors.New("no such user")
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*auth.Session")).Return(nil)

		svc := NewService(repo, lookupFixed(5, "pass123"), testSecret)

		token, err := svc.Login(ctx, "manager", "pass123")
		require.NoError(t, err)

		claims, err := ParseSessionToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, int64(5), claims.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, lookupFixed(5, "pass123"), testSecret)

		_, err := svc.Login(ctx, "manager", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("UnknownLogin", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, lookupFixed(5, "pass123"), testSecret)

		_, err := svc.Login(ctx, "nobody", "pass123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Get", ctx, sessionID).Return(&Session{
			ID:        sessionID,
			UserID:    5,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		svc := NewService(repo, nil, testSecret)
		token, err := SignSessionToken(testSecret, sessionID.String(), 5, time.Now().Add(time.Hour))
		require.NoError(t, err)

		identity, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(5), identity.UserID)
		assert.Equal(t, sessionID, identity.SessionID)
	})

	t.Run("SessionRevoked", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Get", ctx, sessionID).Return(nil, ErrSessionNotFound)

		svc := NewService(repo, nil, testSecret)
		token, _ := SignSessionToken(testSecret, sessionID.String(), 5, time.Now().Add(time.Hour))

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("SessionExpiredRowStillPresent", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Get", ctx, sessionID).Return(&Session{
			ID:        sessionID,
			UserID:    5,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
		repo.On("Delete", ctx, sessionID).Return(nil)

		svc := NewService(repo, nil, testSecret)
		// Cookie expiry and row expiry can drift; the row decides.
		token, _ := SignSessionToken(testSecret, sessionID.String(), 5, time.Now().Add(time.Hour))

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpired)
		repo.AssertCalled(t, "Delete", ctx, sessionID)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil, testSecret)
		_, err := svc.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("DeletesSession", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Delete", ctx, sessionID).Return(nil)

		svc := NewService(repo, nil, testSecret)
		token, _ := SignSessionToken(testSecret, sessionID.String(), 5, time.Now().Add(time.Hour))

		assert.NoError(t, svc.Logout(ctx, token))
		repo.AssertExpectations(t)
	})

	t.Run("GarbageTokenIsNoop", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, testSecret)

		assert.NoError(t, svc.Logout(ctx, "garbage"))
		repo.AssertNotCalled(t, "Delete")
	})
}
