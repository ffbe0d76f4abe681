package address

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

func (m *MockRepository) List(ctx context.Context, search string) ([]*Address, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Address), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, a *Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, a *Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("FullForm", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*address.Address")).Return(nil)

		svc := NewService(repo)
		a, err := svc.Create(ctx, Form{
			Street:          "Main Street",
			HouseNumber:     "10",
			ApartmentNumber: "4",
			Entrance:        "2",
			Floor:           "3",
			DoorCode:        "1234",
			Latitude:        "51.52",
			Longitude:       "-0.15",
		})
		require.NoError(t, err)
		require.NotNil(t, a.Floor)
		assert.Equal(t, 3, *a.Floor)
		require.NotNil(t, a.Latitude)
		assert.Equal(t, "51.52", a.Latitude.String())
	})

	t.Run("MinimalForm", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewService(repo)
		a, err := svc.Create(ctx, Form{Street: "Main Street", HouseNumber: "10"})
		require.NoError(t, err)
		assert.Nil(t, a.ApartmentNumber)
		assert.Nil(t, a.Floor)
		assert.Nil(t, a.Latitude)
	})

	t.Run("MissingStreet", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(ctx, Form{HouseNumber: "10"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "street")
	})

	t.Run("BadFloor", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(ctx, Form{Street: "Main Street", HouseNumber: "10", Floor: "third"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "floor")
	})

	t.Run("LatitudeOutOfRange", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(ctx, Form{Street: "Main Street", HouseNumber: "10", Latitude: "123.4"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "latitude")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", ctx, mock.MatchedBy(func(a *Address) bool {
			return a.ID == 7 && a.HouseNumber == "12"
		})).Return(nil)

		svc := NewService(repo)
		a, err := svc.Update(ctx, 7, Form{Street: "Main Street", HouseNumber: "12"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), a.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", ctx, mock.Anything).Return(ErrNotFound)

		svc := NewService(repo)
		_, err := svc.Update(ctx, 99, Form{Street: "Main Street", HouseNumber: "10"})
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("Delete", ctx, int64(99)).Return(ErrNotFound)

	svc := NewService(repo)
	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, 99)))
}
