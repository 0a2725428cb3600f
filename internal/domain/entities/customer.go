package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// EmploymentStatus represents a customer's employment status
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "EMPLOYED"
	EmploymentSelfEmployed EmploymentStatus = "SELF_EMPLOYED"
	EmploymentUnemployed   EmploymentStatus = "UNEMPLOYED"
	EmploymentRetired      EmploymentStatus = "RETIRED"
	EmploymentStudent      EmploymentStatus = "STUDENT"
)

// Valid reports whether s is a known employment status.
func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentEmployed, EmploymentSelfEmployed, EmploymentUnemployed, EmploymentRetired, EmploymentStudent:
		return true
	}
	return false
}

// Customer holds the banking profile of a user
type Customer struct {
	ID               uuid.UUID           `json:"id"`
	UserID           string              `json:"userId"`
	Phone            null.String         `json:"phone"`
	Address          null.String         `json:"address"`
	City             null.String         `json:"city"`
	State            null.String         `json:"state"`
	ZipCode          null.String         `json:"zipCode"`
	Country          null.String         `json:"country"`
	EmploymentStatus null.String         `json:"employmentStatus"`
	AnnualIncome     decimal.NullDecimal `json:"annualIncome"`
	AdditionalInfo   null.String         `json:"additionalInfo"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`

	User     *User      `json:"user,omitempty"`
	Accounts []*Account `json:"accounts,omitempty"`
	Loans    []*Loan    `json:"loans,omitempty"`
}

// CustomerProfileInput represents input for creating or updating a customer profile
type CustomerProfileInput struct {
	Phone            *string          `json:"phone"`
	Address          *string          `json:"address"`
	City             *string          `json:"city"`
	State            *string          `json:"state"`
	ZipCode          *string          `json:"zipCode"`
	Country          *string          `json:"country"`
	EmploymentStatus *string          `json:"employmentStatus"`
	AnnualIncome     *decimal.Decimal `json:"annualIncome"`
	AdditionalInfo   *string          `json:"additionalInfo"`
}

// Apply copies the provided fields onto c. Nil fields are left untouched.
func (in *CustomerProfileInput) Apply(c *Customer) {
	set := func(dst *null.String, v *string) {
		if v != nil {
			dst.SetValid(*v)
		}
	}
	set(&c.Phone, in.Phone)
	set(&c.Address, in.Address)
	set(&c.City, in.City)
	set(&c.State, in.State)
	set(&c.ZipCode, in.ZipCode)
	set(&c.Country, in.Country)
	set(&c.EmploymentStatus, in.EmploymentStatus)
	set(&c.AdditionalInfo, in.AdditionalInfo)
	if in.AnnualIncome != nil {
		c.AnnualIncome = decimal.NewNullDecimal(*in.AnnualIncome)
	}
}
