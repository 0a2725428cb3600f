package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// AccountType represents the kind of account
type AccountType string

const (
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeCurrent      AccountType = "CURRENT"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeFixedDeposit:
		return true
	}
	return false
}

// AccountStatus represents account status
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

var accountTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusActive:    {AccountStatusSuspended, AccountStatusClosed},
	AccountStatusSuspended: {AccountStatusActive, AccountStatusClosed},
}

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusSuspended, AccountStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether an account in status s may move to next.
// CLOSED is terminal and a same-state move is never allowed.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range accountTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Account is a customer's deposit account
type Account struct {
	ID            uuid.UUID           `json:"id"`
	CustomerID    uuid.UUID           `json:"customerId"`
	AccountNumber string              `json:"accountNumber"`
	Type          AccountType         `json:"type"`
	Balance       decimal.Decimal     `json:"balance"`
	Status        AccountStatus       `json:"status"`
	Tenure        null.Int            `json:"tenure"`
	InterestRate  decimal.NullDecimal `json:"interestRate"`
	MaturityDate  null.Time           `json:"maturityDate"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	Transactions []*Transaction `json:"transactions,omitempty"`
}

// IsFixedDeposit reports whether the account carries fixed-deposit terms.
func (a *Account) IsFixedDeposit() bool {
	return a.Type == AccountTypeFixedDeposit && a.Tenure.Valid && a.InterestRate.Valid
}

// Masked returns a shallow copy of the account with its number masked.
func (a *Account) Masked() *Account {
	cp := *a
	cp.AccountNumber = MaskAccountNumber(a.AccountNumber)
	return &cp
}

// AccountView is an account as returned to clients, with the computed
// maturity value for fixed deposits.
type AccountView struct {
	*Account
	MaturityValue *decimal.Decimal `json:"maturityValue,omitempty"`
}

// NewAccountView builds the client view of a.
func NewAccountView(a *Account) *AccountView {
	v := &AccountView{Account: a}
	if a.IsFixedDeposit() {
		mv := MaturityValue(a.Balance, a.InterestRate.Decimal, a.Tenure.Int).Round(2)
		v.MaturityValue = &mv
	}
	return v
}

// CreateAccountInput represents account opening input
type CreateAccountInput struct {
	CustomerID     uuid.UUID       `json:"customerId" binding:"required"`
	Type           AccountType     `json:"type" binding:"required"`
	InitialDeposit decimal.Decimal `json:"initialDeposit" binding:"required"`
	Tenure         *int            `json:"tenure"`
}

// UpdateAccountStatusInput represents account status change input
type UpdateAccountStatusInput struct {
	Status AccountStatus `json:"status" binding:"required"`
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CalculateInterestRate returns the annual fixed-deposit rate in percent for a tenure in months.
func CalculateInterestRate(months int) decimal.Decimal {
	switch {
	case months < 3:
		return decimal.RequireFromString("3.5")
	case months < 6:
		return decimal.RequireFromString("4.0")
	case months < 12:
		return decimal.RequireFromString("5.0")
	case months < 24:
		return decimal.RequireFromString("5.5")
	case months < 36:
		return decimal.RequireFromString("6.0")
	case months < 60:
		return decimal.RequireFromString("6.25")
	default:
		return decimal.RequireFromString("6.5")
	}
}

// MaturityValue computes balance × (1 + rate/100 × tenure/12) using simple interest.
func MaturityValue(balance, ratePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	factor := ratePercent.Div(hundred).Mul(decimal.NewFromInt(int64(tenureMonths))).Div(twelve)
	return balance.Mul(decimal.NewFromInt(1).Add(factor))
}

// MaturityDate returns the maturity date of a deposit opened at start.
func MaturityDate(start time.Time, tenureMonths int) time.Time {
	return start.AddDate(0, tenureMonths, 0)
}

// MaskAccountNumber keeps the first two and last two characters and stars the rest.
func MaskAccountNumber(number string) string {
	if number == "" {
		return "****"
	}
	if len(number) <= 4 {
		return number
	}
	return number[:2] + strings.Repeat("*", len(number)-4) + number[len(number)-2:]
}
