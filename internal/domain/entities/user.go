package entities

import (
	"time"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleEmployee UserRole = "EMPLOYEE"
	UserRoleAdmin    UserRole = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleEmployee, UserRoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may act on other customers' resources.
func (r UserRole) IsStaff() bool {
	return r == UserRoleEmployee || r == UserRoleAdmin
}

// User is a local record for an identity-provider subject.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is what the identity provider asserts about the caller.
type Identity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// MeResponse represents the resolved caller
type MeResponse struct {
	User       *User   `json:"user"`
	CustomerID *string `json:"customerId,omitempty"`
}
