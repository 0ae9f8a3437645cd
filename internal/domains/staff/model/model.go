package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "staff_users"
	EntityName = "staff_user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// StaffUser is a front-desk or admin account. Guests never log in.
type StaffUser struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
