package client

import "time"

type Client struct {
	ID               int64
	Email            string
	Phone            string
	FullName         string
	RegistrationDate time.Time
	Status           string
}

type Form struct {
	FullName string `form:"full_name" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email"`
	Phone    string `form:"phone" validate:"required,max=20"`
	Status   string `form:"status" validate:"required,oneof=active blocked"`
}
