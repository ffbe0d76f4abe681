package product

import (
	"context"
	"errors"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/form"
)

type Service interface {
	List(ctx context.Context, search string) ([]*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, f Form) (*Product, error)
	Update(ctx context.Context, id int64, f Form) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]*Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("product", id)
	}
	return p, err
}

func (s *service) Create(ctx context.Context, f Form) (*Product, error) {
	p, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id int64, f Form) (*Product, error) {
	p, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	p.ID = id

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("product", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("product", id)
	case errors.Is(err, ErrInUse):
		return apperr.Conflict("This product appears on existing orders and cannot be deleted")
	}
	return err
}

func fromForm(f Form) (*Product, *apperr.ValidationError) {
	ve := form.Validate(f)
	if ve == nil {
		ve = apperr.NewValidation()
	}

	p := &Product{
		Name: strings.TrimSpace(f.Name),
	}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		p.Description = &desc
	}
	if dims := strings.TrimSpace(f.DimensionsCm); dims != "" {
		p.DimensionsCm = &dims
	}

	if _, ok := ve.Fields["price"]; !ok {
		p.Price = form.ParseDecimal(ve, "price", f.Price)
		if p.Price.IsNegative() {
			ve.Add("price", "Price cannot be negative")
		}
	}
	if _, ok := ve.Fields["weight_kg"]; !ok {
		p.WeightKg = form.ParseDecimal(ve, "weight_kg", f.WeightKg)
		if p.WeightKg.IsNegative() {
			ve.Add("weight_kg", "Weight cannot be negative")
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return p, nil
}
