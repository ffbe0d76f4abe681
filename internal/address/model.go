package address

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Address struct {
	ID              int64
	Street          string
	HouseNumber     string
	ApartmentNumber *string
	Entrance        *string
	Floor           *int
	DoorCode        *string
	Latitude        *decimal.Decimal
	Longitude       *decimal.Decimal
}

// Label is the one-line form used in order screens and pick lists.
func (a *Address) Label() string {
	return fmt.Sprintf("%s, %s", a.Street, a.HouseNumber)
}

type Form struct {
	Street          string `form:"street" validate:"required,max=255"`
	HouseNumber     string `form:"house_number" validate:"required,max=20"`
	ApartmentNumber string `form:"apartment_number" validate:"max=10"`
	Entrance        string `form:"entrance" validate:"max=10"`
	Floor           string `form:"floor"`
	DoorCode        string `form:"door_code" validate:"max=10"`
	Latitude        string `form:"latitude"`
	Longitude       string `form:"longitude"`
}
