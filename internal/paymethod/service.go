package paymethod

import (
	"context"
	"errors"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/form"

	"github.com/shopspring/decimal"
)

var feePercentMax = decimal.NewFromInt(100)

type Service interface {
	List(ctx context.Context) ([]*PaymentMethod, error)
	Get(ctx context.Context, id int64) (*PaymentMethod, error)
	Create(ctx context.Context, f Form) (*PaymentMethod, error)
	Update(ctx context.Context, id int64, f Form) (*PaymentMethod, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*PaymentMethod, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*PaymentMethod, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("payment method", id)
	}
	return m, err
}

func (s *service) Create(ctx context.Context, f Form) (*PaymentMethod, error) {
	m, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, ErrCodeTaken) {
			return nil, apperr.NewValidation().Add("code", "A payment method with this code already exists")
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, id int64, f Form) (*PaymentMethod, error) {
	m, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	m.ID = id

	if err := s.repo.Update(ctx, m); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperr.NotFound("payment method", id)
		case errors.Is(err, ErrCodeTaken):
			return nil, apperr.NewValidation().Add("code", "A payment method with this code already exists")
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("payment method", id)
	case errors.Is(err, ErrInUse):
		return apperr.Conflict("This payment method is used by existing orders and cannot be deleted")
	}
	return err
}

func fromForm(f Form) (*PaymentMethod, *apperr.ValidationError) {
	ve := form.Validate(f)
	if ve == nil {
		ve = apperr.NewValidation()
	}

	fee := decimal.Zero
	if strings.TrimSpace(f.FeePercent) != "" {
		fee = form.ParseDecimal(ve, "fee_percent", f.FeePercent)
		if fee.IsNegative() || fee.GreaterThan(feePercentMax) {
			ve.Add("fee_percent", "Fee percent must be between 0 and 100")
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}

	return &PaymentMethod{
		Code:       strings.TrimSpace(f.Code),
		Name:       strings.TrimSpace(f.Name),
		FeePercent: fee,
	}, nil
}
