package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root: its items, review and payment live and die
// with it. Display fields are joined in by the repository and never written
// back.
type Order struct {
	ID                int64
	ClientID          int64
	DeliveryAddressID int64
	PickupAddressID   *int64
	CourierID         *int64
	StatusID          int64
	DeliveryCost      decimal.Decimal
	OrderTotal        decimal.Decimal
	PaymentMethodID   int64
	CreatedAt         time.Time
	ConfirmedAt       *time.Time
	CourierAssignedAt *time.Time
	DispatchedAt      *time.Time
	DeliveredAt       *time.Time
	Comment           *string

	ClientName        string
	ClientPhone       string
	StatusCode        string
	StatusName        string
	CourierName       *string
	PaymentMethodName string
	DeliveryAddress   string
	PickupAddress     *string
}

// Item is a line on an order. PriceAtOrder snapshots the product price at
// add-time and never changes afterwards.
type Item struct {
	ID           int64
	OrderID      int64
	ProductID    int64
	ProductName  string
	Quantity     int
	PriceAtOrder decimal.Decimal
}

func (i *Item) Total() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Review struct {
	ID        int64
	OrderID   int64
	Rating    int
	Text      *string
	CreatedAt time.Time
}

type Payment struct {
	ID                int64
	OrderID           int64
	PaymentMethodID   int64
	MethodName        string
	Amount            decimal.Decimal
	Status            string
	TransactionNumber *string
	PaidAt            time.Time
}

// Detail is everything the order screen shows.
type Detail struct {
	Order   *Order
	Items   []*Item
	Review  *Review
	Payment *Payment
}

type Form struct {
	ClientID          string `form:"client_id" validate:"required"`
	DeliveryAddressID string `form:"delivery_address_id" validate:"required"`
	PickupAddressID   string `form:"pickup_address_id"`
	CourierID         string `form:"courier_id"`
	StatusID          string `form:"status_id" validate:"required"`
	DeliveryCost      string `form:"delivery_cost" validate:"required"`
	PaymentMethodID   string `form:"payment_method_id" validate:"required"`
	Comment           string `form:"comment"`
}

type ItemForm struct {
	ProductID string `form:"product_id" validate:"required"`
	Quantity  string `form:"quantity"`
}

// SearchForm holds the raw query-string filters of the order list screen.
// All filters are conjunctive.
type SearchForm struct {
	ClientQuery string `form:"client_name"`
	StatusCode  string `form:"status"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	CourierID   string `form:"courier"`
	Page        string `form:"page"`
}

// Filter is a parsed, validated SearchForm. DateTo is exclusive: the
// service converts an inclusive calendar date into start-of-next-day.
type Filter struct {
	ClientQuery string
	StatusCode  string
	DateFrom    *time.Time
	DateTo      *time.Time
	CourierID   *int64
}

// Page is one slice of the filtered order list.
type Page struct {
	Orders []*Order
	Number int
	Pages  int
	Total  int
}
