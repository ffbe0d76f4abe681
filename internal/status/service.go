package status

import (
	"context"
	"errors"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/form"
)

type Service interface {
	List(ctx context.Context) ([]*OrderStatus, error)
	Get(ctx context.Context, id int64) (*OrderStatus, error)
	Create(ctx context.Context, f Form) (*OrderStatus, error)
	Update(ctx context.Context, id int64, f Form) (*OrderStatus, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*OrderStatus, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*OrderStatus, error) {
	st, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("order status", id)
	}
	return st, err
}

func (s *service) Create(ctx context.Context, f Form) (*OrderStatus, error) {
	st, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}

	if err := s.repo.Create(ctx, st); err != nil {
		if errors.Is(err, ErrCodeTaken) {
			return nil, apperr.NewValidation().Add("code", "A status with this code already exists")
		}
		return nil, err
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, id int64, f Form) (*OrderStatus, error) {
	st, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	st.ID = id

	if err := s.repo.Update(ctx, st); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperr.NotFound("order status", id)
		case errors.Is(err, ErrCodeTaken):
			return nil, apperr.NewValidation().Add("code", "A status with this code already exists")
		}
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("order status", id)
	case errors.Is(err, ErrInUse):
		// Mandatory reference on orders: deletion must block, not cascade.
		return apperr.Conflict("This status is used by existing orders and cannot be deleted")
	}
	return err
}

func fromForm(f Form) (*OrderStatus, *apperr.ValidationError) {
	if ve := form.Validate(f); ve != nil {
		return nil, ve
	}

	return &OrderStatus{
		Code:      strings.TrimSpace(f.Code),
		Name:      strings.TrimSpace(f.Name),
		SortOrder: f.SortOrder,
	}, nil
}
