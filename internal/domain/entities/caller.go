package entities

import "github.com/google/uuid"

// Caller is the authenticated principal of a request
type Caller struct {
	UserID     string
	Role       UserRole
	CustomerID *uuid.UUID
}

// IsStaff reports whether the caller acts with employee privileges
func (c *Caller) IsStaff() bool {
	return c != nil && c.Role.IsStaff()
}

// Owns reports whether customerID is the caller's own customer profile
func (c *Caller) Owns(customerID uuid.UUID) bool {
	return c != nil && c.CustomerID != nil && *c.CustomerID == customerID
}
