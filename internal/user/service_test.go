package user

import (
	"context"
	"testing"
	"time"

	"delservice/internal/apperr"
	"delservice/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, search string) ([]*User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) ListByRole(ctx context.Context, roleName string) ([]*User, error) {
	args := m.Called(ctx, roleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validUserForm() Form {
	return Form{
		RoleID:   "2",
		Login:    "pnovak",
		Password: "secret123",
		FullName: "Pavel Novak",
		Phone:    "+10000000002",
		HireDate: "2026-01-15",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("HashesPassword", func(t *testing.T) {
		var created *User
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*User)
		}).Return(nil)

		svc := NewService(repo)
		_, err := svc.Create(ctx, validUserForm())
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEqual(t, "secret123", created.PasswordHash)
		assert.True(t, auth.CheckPasswordHash("secret123", created.PasswordHash))
	})

	t.Run("DefaultsStatusToWorks", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewService(repo)
		u, err := svc.Create(ctx, validUserForm())
		require.NoError(t, err)
		assert.Equal(t, "works", u.Status)
	})

	t.Run("PasswordRequired", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		f := validUserForm()
		f.Password = ""
		_, err := svc.Create(ctx, f)
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "password")
	})

	t.Run("BadHireDate", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		f := validUserForm()
		f.HireDate = "15.01.2026"
		_, err := svc.Create(ctx, f)
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "hire_date")
	})

	t.Run("BadRoleID", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		f := validUserForm()
		f.RoleID = "abc"
		_, err := svc.Create(ctx, f)
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "role_id")
	})

	t.Run("DuplicateLogin", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(ErrLoginTaken)

		svc := NewService(repo)
		_, err := svc.Create(ctx, validUserForm())
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "login")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("BlankPasswordKeepsHash", func(t *testing.T) {
		existingHash, err := auth.HashPassword("oldpassword")
		require.NoError(t, err)

		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(3)).
			Return(&User{ID: 3, PasswordHash: existingHash}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *User) bool {
			return u.PasswordHash == existingHash
		})).Return(nil)

		svc := NewService(repo)
		f := validUserForm()
		f.Password = ""
		u, err := svc.Update(ctx, 3, f)
		require.NoError(t, err)
		assert.Equal(t, existingHash, u.PasswordHash)
		assert.True(t, auth.CheckPasswordHash("oldpassword", u.PasswordHash))
	})

	t.Run("NewPasswordRehashes", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		svc := NewService(repo)
		f := validUserForm()
		f.Password = "newpassword"
		u, err := svc.Update(ctx, 3, f)
		require.NoError(t, err)
		assert.True(t, auth.CheckPasswordHash("newpassword", u.PasswordHash))
		repo.AssertNotCalled(t, "GetByID", ctx, int64(3))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(99)).Return(nil, ErrNotFound)

		svc := NewService(repo)
		f := validUserForm()
		f.Password = ""
		_, err := svc.Update(ctx, 99, f)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_ListCouriers(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("ListByRole", ctx, "courier").
		Return([]*User{{ID: 2, FullName: "Pavel Novak", RoleName: "courier", HireDate: time.Now()}}, nil)

	svc := NewService(repo)
	couriers, err := svc.ListCouriers(ctx)
	require.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, "courier", couriers[0].RoleName)
}
