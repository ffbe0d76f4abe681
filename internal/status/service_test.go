package status

import (
	"context"
	"testing"

	"delservice/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*OrderStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OrderStatus), args.Error(1)
}

func (m *MockRepository) ListCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*OrderStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderStatus), args.Error(1)
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*OrderStatus, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderStatus), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, st *OrderStatus) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, st *OrderStatus) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("InUseBecomesConflict", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Delete", ctx, int64(1)).Return(ErrInUse)

		svc := NewService(repo)
		err := svc.Delete(ctx, 1)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("Unreferenced", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Delete", ctx, int64(9)).Return(nil)

		svc := NewService(repo)
		assert.NoError(t, svc.Delete(ctx, 9))
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateCode", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(ErrCodeTaken)

		svc := NewService(repo)
		_, err := svc.Create(ctx, Form{Code: "created", Name: "Created", SortOrder: 1})

		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "code")
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Create(ctx, Form{})

		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "code")
		assert.Contains(t, ve.Fields, "name")
	})
}
