package user

import "time"

// User is a staff account: managers operate the back office, couriers
// get assigned to orders.
type User struct {
	ID           int64
	RoleID       int64
	RoleName     string // joined from roles, not stored on users
	Login        string
	PasswordHash string
	FullName     string
	Phone        string
	Status       string
	HireDate     time.Time
}

// Form carries Password instead of PasswordHash. An empty Password on
// edit keeps the stored hash.
type Form struct {
	RoleID   string `form:"role_id" validate:"required"`
	Login    string `form:"login" validate:"required,max=50"`
	Password string `form:"password" validate:"max=72"`
	FullName string `form:"full_name" validate:"required,max=255"`
	Phone    string `form:"phone" validate:"required,max=20"`
	Status   string `form:"status" validate:"max=20"`
	HireDate string `form:"hire_date" validate:"required"`
}
