package client

import (
	"context"
	"errors"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/form"
)

type Service interface {
	List(ctx context.Context, search string) ([]*Client, error)
	Get(ctx context.Context, id int64) (*Client, error)
	Create(ctx context.Context, f Form) (*Client, error)
	Update(ctx context.Context, id int64, f Form) (*Client, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]*Client, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *service) Get(ctx context.Context, id int64) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("client", id)
	}
	return c, err
}

func (s *service) Create(ctx context.Context, f Form) (*Client, error) {
	c, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, apperr.NewValidation().Add("email", "A client with this email already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id int64, f Form) (*Client, error) {
	c, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	c.ID = id

	if err := s.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperr.NotFound("client", id)
		case errors.Is(err, ErrEmailExists):
			return nil, apperr.NewValidation().Add("email", "A client with this email already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("client", id)
	}
	return err
}

func fromForm(f Form) (*Client, *apperr.ValidationError) {
	if ve := form.Validate(f); ve != nil {
		return nil, ve
	}

	return &Client{
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:    strings.TrimSpace(f.Phone),
		Status:   f.Status,
	}, nil
}
