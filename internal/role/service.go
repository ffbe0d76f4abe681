package role

import (
	"context"
	"errors"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/form"
)

type Service interface {
	List(ctx context.Context) ([]*Role, error)
	Get(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, f Form) (*Role, error)
	Update(ctx context.Context, id int64, f Form) (*Role, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Role, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("role", id)
	}
	return role, err
}

func (s *service) Create(ctx context.Context, f Form) (*Role, error) {
	role, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}

	if err := s.repo.Create(ctx, role); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, apperr.NewValidation().Add("name", "A role with this name already exists")
		}
		return nil, err
	}
	return role, nil
}

func (s *service) Update(ctx context.Context, id int64, f Form) (*Role, error) {
	role, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	role.ID = id

	if err := s.repo.Update(ctx, role); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperr.NotFound("role", id)
		case errors.Is(err, ErrNameTaken):
			return nil, apperr.NewValidation().Add("name", "A role with this name already exists")
		}
		return nil, err
	}
	return role, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("role", id)
	}
	return err
}

func fromForm(f Form) (*Role, *apperr.ValidationError) {
	if ve := form.Validate(f); ve != nil {
		return nil, ve
	}

	role := &Role{Name: strings.TrimSpace(f.Name)}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		role.Description = &desc
	}
	return role, nil
}
