package paymethod

import "github.com/shopspring/decimal"

type PaymentMethod struct {
	ID         int64
	Code       string
	Name       string
	FeePercent decimal.Decimal
}

// Form carries fee_percent as a raw string; decimal parsing and bounds are
// checked by the service so the error lands on the right field.
type Form struct {
	Code       string `form:"code" validate:"required,max=20"`
	Name       string `form:"name" validate:"required,max=50"`
	FeePercent string `form:"fee_percent"`
}
