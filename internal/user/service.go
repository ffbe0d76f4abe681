package user

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/auth"
	"delservice/internal/form"
)

const defaultStatus = "works"

type Service interface {
	List(ctx context.Context, search string) ([]*User, error)
	ListCouriers(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, f Form) (*User, error)
	Update(ctx context.Context, id int64, f Form) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]*User, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *service) ListCouriers(ctx context.Context) ([]*User, error) {
	return s.repo.ListByRole(ctx, "courier")
}

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("user", id)
	}
	return u, err
}

func (s *service) Create(ctx context.Context, f Form) (*User, error) {
	u, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}

	if f.Password == "" {
		return nil, apperr.NewValidation().Add("password", "This field is required")
	}
	hash, err := auth.HashPassword(f.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, translateRepoError(err, u.ID)
	}
	return u, nil
}

// Update keeps the stored password hash when the form's password is blank.
func (s *service) Update(ctx context.Context, id int64, f Form) (*User, error) {
	u, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	u.ID = id

	if f.Password != "" {
		hash, err := auth.HashPassword(f.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	} else {
		current, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		if err != nil {
			return nil, err
		}
		u.PasswordHash = current.PasswordHash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, translateRepoError(err, id)
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("user", id)
	}
	return err
}

func translateRepoError(err error, id int64) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("user", id)
	case errors.Is(err, ErrLoginTaken):
		return apperr.NewValidation().Add("login", "This login is already taken")
	case errors.Is(err, ErrNoSuchRole):
		return apperr.NewValidation().Add("role_id", "Select a valid role")
	}
	return err
}

func fromForm(f Form) (*User, *apperr.ValidationError) {
	ve := form.Validate(f)
	if ve == nil {
		ve = apperr.NewValidation()
	}

	u := &User{
		Login:    strings.TrimSpace(f.Login),
		FullName: strings.TrimSpace(f.FullName),
		Phone:    strings.TrimSpace(f.Phone),
		Status:   strings.TrimSpace(f.Status),
	}
	if u.Status == "" {
		u.Status = defaultStatus
	}

	if _, ok := ve.Fields["role_id"]; !ok {
		roleID, err := strconv.ParseInt(strings.TrimSpace(f.RoleID), 10, 64)
		if err != nil {
			ve.Add("role_id", "Select a valid role")
		} else {
			u.RoleID = roleID
		}
	}
	if _, ok := ve.Fields["hire_date"]; !ok {
		u.HireDate = form.ParseDate(ve, "hire_date", f.HireDate)
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return u, nil
}
