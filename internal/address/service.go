package address

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"delservice/internal/apperr"
	"delservice/internal/form"

	"github.com/shopspring/decimal"
)

var (
	latitudeMax  = decimal.NewFromInt(90)
	longitudeMax = decimal.NewFromInt(180)
)

type Service interface {
	List(ctx context.Context, search string) ([]*Address, error)
	Get(ctx context.Context, id int64) (*Address, error)
	Create(ctx context.Context, f Form) (*Address, error)
	Update(ctx context.Context, id int64, f Form) (*Address, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]*Address, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *service) Get(ctx context.Context, id int64) (*Address, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("address", id)
	}
	return a, err
}

func (s *service) Create(ctx context.Context, f Form) (*Address, error) {
	a, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id int64, f Form) (*Address, error) {
	a, ve := fromForm(f)
	if ve != nil {
		return nil, ve
	}
	a.ID = id

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("address", id)
		}
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("address", id)
	}
	return err
}

func fromForm(f Form) (*Address, *apperr.ValidationError) {
	ve := form.Validate(f)
	if ve == nil {
		ve = apperr.NewValidation()
	}

	a := &Address{
		Street:          strings.TrimSpace(f.Street),
		HouseNumber:     strings.TrimSpace(f.HouseNumber),
		ApartmentNumber: optional(f.ApartmentNumber),
		Entrance:        optional(f.Entrance),
		DoorCode:        optional(f.DoorCode),
	}

	if raw := strings.TrimSpace(f.Floor); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add("floor", "Enter a whole number")
		} else {
			a.Floor = &n
		}
	}

	a.Latitude = parseCoordinate(ve, "latitude", f.Latitude, latitudeMax)
	a.Longitude = parseCoordinate(ve, "longitude", f.Longitude, longitudeMax)

	if ve.HasErrors() {
		return nil, ve
	}
	return a, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseCoordinate(ve *apperr.ValidationError, field, raw string, max decimal.Decimal) *decimal.Decimal {
	d := form.ParseOptionalDecimal(ve, field, raw)
	if d == nil {
		return nil
	}
	if d.Abs().GreaterThan(max) {
		ve.Add(field, "Value must be between -"+max.String()+" and "+max.String())
		return nil
	}
	return d
}
