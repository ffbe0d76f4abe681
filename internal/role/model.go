package role

type Role struct {
	ID          int64
	Name        string
	Description *string
}

// Form carries the editable fields of a role.
type Form struct {
	Name        string `form:"name" validate:"required,max=50"`
	Description string `form:"description"`
}
