package product

import "github.com/shopspring/decimal"

type Product struct {
	ID           int64
	Name         string
	Description  *string
	Price        decimal.Decimal
	WeightKg     decimal.Decimal
	DimensionsCm *string
}

type Form struct {
	Name         string `form:"name" validate:"required,max=255"`
	Description  string `form:"description"`
	Price        string `form:"price" validate:"required"`
	WeightKg     string `form:"weight_kg" validate:"required"`
	DimensionsCm string `form:"dimensions_cm" validate:"max=50"`
}
