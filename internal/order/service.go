package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"delservice/internal/apperr"
	"delservice/internal/form"
	"delservice/internal/status"
)

const pageSize = 20

type Service interface {
	Search(ctx context.Context, f SearchForm) (*Page, error)
	Get(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, f Form) (*Order, error)
	Update(ctx context.Context, id int64, f Form) (*Order, error)
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, orderID int64, f ItemForm) (*Item, error)
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	RemoveItem(ctx context.Context, itemID int64) (int64, error)
}

type service struct {
	repo     Repository
	statuses status.Repository
	now      func() time.Time
}

func NewService(repo Repository, statuses status.Repository) Service {
	return &service{repo: repo, statuses: statuses, now: time.Now}
}

func (s *service) Search(ctx context.Context, f SearchForm) (*Page, error) {
	filter, ve := s.parseSearch(ctx, f)
	if ve != nil {
		return nil, ve
	}

	total, err := s.repo.Count(ctx, *filter)
	if err != nil {
		return nil, err
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	page := 1
	if raw := strings.TrimSpace(f.Page); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 1 {
			page = n
		}
	}
	// A page past the end shows the last page instead of an empty list.
	if page > pages {
		page = pages
	}

	orders, err := s.repo.Search(ctx, *filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Orders: orders, Number: page, Pages: pages, Total: total}, nil
}

// parseSearch validates the raw filters. The status choice is checked
// against the live status table, so codes added or removed by admins take
// effect immediately.
func (s *service) parseSearch(ctx context.Context, f SearchForm) (*Filter, error) {
	ve := apperr.NewValidation()
	filter := &Filter{ClientQuery: strings.TrimSpace(f.ClientQuery)}

	if code := strings.TrimSpace(f.StatusCode); code != "" {
		codes, err := s.statuses.ListCodes(ctx)
		if err != nil {
			return nil, err
		}
		if !contains(codes, code) {
			ve.Add("status", "Select a valid status")
		} else {
			filter.StatusCode = code
		}
	}

	filter.DateFrom = form.ParseOptionalDate(ve, "date_from", f.DateFrom)
	if to := form.ParseOptionalDate(ve, "date_to", f.DateTo); to != nil {
		// Inclusive calendar date: match everything before the next day.
		end := to.AddDate(0, 0, 1)
		filter.DateTo = &end
	}

	if raw := strings.TrimSpace(f.CourierID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ve.Add("courier", "Select a valid courier")
		} else {
			filter.CourierID = &id
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return filter, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (s *service) Get(ctx context.Context, id int64) (*Detail, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{Order: o, Items: items}

	if rv, err := s.repo.GetReview(ctx, id); err == nil {
		d.Review = rv
	} else if !errors.Is(err, ErrNoReview) {
		return nil, err
	}
	if pay, err := s.repo.GetPayment(ctx, id); err == nil {
		d.Payment = pay
	} else if !errors.Is(err, ErrNoPayment) {
		return nil, err
	}
	return d, nil
}

// Create starts an order with no items, so order_total is zero. The
// initial status stamps its milestone timestamp when it is past created.
func (s *service) Create(ctx context.Context, f Form) (*Order, error) {
	o, ve := s.fromForm(f)
	if ve != nil {
		return nil, ve
	}

	st, err := s.statuses.GetByID(ctx, o.StatusID)
	if errors.Is(err, status.ErrNotFound) {
		return nil, apperr.NewValidation().Add("status_id", "Select a valid status")
	}
	if err != nil {
		return nil, err
	}
	stamp(o, st.Code, s.now())

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, translateWriteError(err, 0)
	}
	return o, nil
}

// Update rewrites the editable fields. Status changes between canonical
// codes must follow the workflow; order_total is untouchable from here.
func (s *service) Update(ctx context.Context, id int64, f Form) (*Order, error) {
	o, ve := s.fromForm(f)
	if ve != nil {
		return nil, ve
	}
	o.ID = id

	current, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}

	// Milestone timestamps carry over; only a new transition may add one.
	o.ConfirmedAt = current.ConfirmedAt
	o.CourierAssignedAt = current.CourierAssignedAt
	o.DispatchedAt = current.DispatchedAt
	o.DeliveredAt = current.DeliveredAt
	o.OrderTotal = current.OrderTotal
	o.CreatedAt = current.CreatedAt

	if o.StatusID != current.StatusID {
		st, err := s.statuses.GetByID(ctx, o.StatusID)
		if errors.Is(err, status.ErrNotFound) {
			return nil, apperr.NewValidation().Add("status_id", "Select a valid status")
		}
		if err != nil {
			return nil, err
		}
		if !CanTransition(current.StatusCode, st.Code) {
			return nil, apperr.NewValidation().Add("status_id",
				fmt.Sprintf("Order cannot move from %q to %q", current.StatusCode, st.Code))
		}
		stamp(o, st.Code, s.now())
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, translateWriteError(err, id)
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("order", id)
	}
	return err
}

func (s *service) AddItem(ctx context.Context, orderID int64, f ItemForm) (*Item, error) {
	ve := form.Validate(f)
	if ve == nil {
		ve = apperr.NewValidation()
	}

	var productID int64
	if _, bad := ve.Fields["product_id"]; !bad {
		id, err := strconv.ParseInt(strings.TrimSpace(f.ProductID), 10, 64)
		if err != nil {
			ve.Add("product_id", "Select a valid product")
		} else {
			productID = id
		}
	}

	quantity := 1
	if raw := strings.TrimSpace(f.Quantity); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			ve.Add("quantity", "Enter a whole number")
		case n < 1:
			ve.Add("quantity", "Quantity must be at least 1")
		default:
			quantity = n
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}

	it, err := s.repo.AddItem(ctx, orderID, productID, quantity)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, apperr.NotFound("order", orderID)
	case errors.Is(err, ErrProductNotFound):
		return nil, apperr.NotFound("product", productID)
	}
	return it, err
}

func (s *service) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	it, err := s.repo.GetItem(ctx, itemID)
	if errors.Is(err, ErrItemNotFound) {
		return nil, apperr.NotFound("order item", itemID)
	}
	return it, err
}

func (s *service) RemoveItem(ctx context.Context, itemID int64) (int64, error) {
	orderID, err := s.repo.RemoveItem(ctx, itemID)
	if errors.Is(err, ErrItemNotFound) {
		return 0, apperr.NotFound("order item", itemID)
	}
	return orderID, err
}

func translateWriteError(err error, id int64) error {
	var ref *InvalidRefError
	if errors.As(err, &ref) {
		return apperr.NewValidation().Add(ref.Field, "Selected value no longer exists")
	}
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("order", id)
	}
	return err
}

func (s *service) fromForm(f Form) (*Order, *apperr.ValidationError) {
	ve := form.Validate(f)
	if ve == nil {
		ve = apperr.NewValidation()
	}

	o := &Order{}
	o.ClientID = parseRef(ve, "client_id", f.ClientID)
	o.DeliveryAddressID = parseRef(ve, "delivery_address_id", f.DeliveryAddressID)
	o.StatusID = parseRef(ve, "status_id", f.StatusID)
	o.PaymentMethodID = parseRef(ve, "payment_method_id", f.PaymentMethodID)

	if id := parseRef(ve, "pickup_address_id", f.PickupAddressID); id != 0 {
		o.PickupAddressID = &id
	}
	if id := parseRef(ve, "courier_id", f.CourierID); id != 0 {
		o.CourierID = &id
	}

	if _, bad := ve.Fields["delivery_cost"]; !bad {
		o.DeliveryCost = form.ParseDecimal(ve, "delivery_cost", f.DeliveryCost)
		if o.DeliveryCost.IsNegative() {
			ve.Add("delivery_cost", "Delivery cost cannot be negative")
		}
	}

	if c := strings.TrimSpace(f.Comment); c != "" {
		o.Comment = &c
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return o, nil
}

// parseRef reads a select-box value. Required fields already failed
// validation when blank, so only malformed values are reported here.
func parseRef(ve *apperr.ValidationError, field, raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if _, bad := ve.Fields[field]; bad {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		ve.Add(field, "Select a valid value")
		return 0
	}
	return id
}
