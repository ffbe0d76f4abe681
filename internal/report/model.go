package report

import (
	"time"

	"delservice/internal/order"

	"github.com/shopspring/decimal"
)

// CourierStat aggregates a courier's orders over the report window.
type CourierStat struct {
	CourierID  int64
	Name       string
	Deliveries int
	Earnings   decimal.Decimal
}

// StatusStat counts orders per status, including statuses with none.
type StatusStat struct {
	StatusID int64
	Name     string
	Orders   int
}

// PaymentStat totals recorded payments per method, including methods
// never used.
type PaymentStat struct {
	MethodID int64
	Name     string
	Payments int
	Amount   decimal.Decimal
}

// Activity is the three-section report rendered on screen and as PDF.
type Activity struct {
	GeneratedAt time.Time
	Since       time.Time
	Couriers    []CourierStat
	Statuses    []StatusStat
	Payments    []PaymentStat
}

type Dashboard struct {
	TotalOrders    int
	PendingOrders  int
	ActiveCouriers int
	TodayOrders    int
	RecentOrders   []*order.Order
}
