package status

// OrderStatus is a row of the order status reference table. The canonical
// workflow codes are seeded by migration; admins may add their own.
type OrderStatus struct {
	ID        int64
	Code      string
	Name      string
	SortOrder int
}

type Form struct {
	Code      string `form:"code" validate:"required,max=20"`
	Name      string `form:"name" validate:"required,max=50"`
	SortOrder int    `form:"sort_order" validate:"gte=0"`
}
