package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus represents loan status
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusPaid     LoanStatus = "PAID"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusRejected LoanStatus = "REJECTED"
)

var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusPending: {LoanStatusActive, LoanStatusRejected},
	LoanStatusActive:  {LoanStatusOverdue, LoanStatusPaid},
	LoanStatusOverdue: {LoanStatusActive, LoanStatusPaid},
}

// Valid reports whether s is a known loan status.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusPending, LoanStatusActive, LoanStatusPaid, LoanStatusOverdue, LoanStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a loan in status s may move to next.
// PAID and REJECTED are terminal.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AcceptsPayments reports whether payments may be applied in status s.
func (s LoanStatus) AcceptsPayments() bool {
	return s == LoanStatusActive || s == LoanStatusOverdue
}

// Loan is a principal lent to a customer
type Loan struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	LoanNumber string          `json:"loanNumber"`
	Amount     decimal.Decimal `json:"amount"`
	Interest   decimal.Decimal `json:"interest"`
	Term       int             `json:"term"`
	Status     LoanStatus      `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	Payments []*LoanPayment `json:"payments,omitempty"`
}

// LoanPayment is an append-only repayment against a loan
type LoanPayment struct {
	ID        uuid.UUID       `json:"id"`
	LoanID    uuid.UUID       `json:"loanId"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"dueDate"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateLoanInput represents loan origination input
type CreateLoanInput struct {
	CustomerID uuid.UUID       `json:"customerId" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Interest   decimal.Decimal `json:"interest" binding:"required"`
	Term       int             `json:"term" binding:"required"`
}

// LoanPaymentInput represents a loan repayment request
type LoanPaymentInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateLoanStatusInput represents loan status change input
type UpdateLoanStatusInput struct {
	Status LoanStatus `json:"status" binding:"required"`
}

// Amortization is the fixed-payment schedule of a loan, rounded for display
type Amortization struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// LoanView is a loan with its schedule and repayment progress
type LoanView struct {
	*Loan
	Amortization *Amortization   `json:"amortization,omitempty"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// ErrAmortizationUndefined is returned when the payment formula has no solution.
var ErrAmortizationUndefined = errors.New("amortization undefined for given terms")

// amortizationPrecision bounds intermediate division precision.
const amortizationPrecision = 16

// CalculateAmortization returns the fixed monthly payment for principal p at annual
// percent rate r over n months: M = i*P / (1 - (1+i)^-n) with i = r/12/100, or P/n
// when the rate is zero.
func CalculateAmortization(principal, annualRate decimal.Decimal, months int) (*Amortization, error) {
	if months <= 0 || !principal.IsPositive() || annualRate.IsNegative() {
		return nil, ErrAmortizationUndefined
	}
	n := decimal.NewFromInt(int64(months))

	var monthly decimal.Decimal
	if annualRate.IsZero() {
		monthly = principal.DivRound(n, amortizationPrecision)
	} else {
		i := annualRate.DivRound(twelve, amortizationPrecision).DivRound(hundred, amortizationPrecision)
		growth := decimal.NewFromInt(1).Add(i).Pow(n)
		denominator := decimal.NewFromInt(1).Sub(decimal.NewFromInt(1).DivRound(growth, amortizationPrecision))
		if denominator.IsZero() {
			return nil, ErrAmortizationUndefined
		}
		monthly = i.Mul(principal).DivRound(denominator, amortizationPrecision)
	}

	total := monthly.Mul(n)
	return &Amortization{
		MonthlyPayment: monthly.Round(2),
		TotalPayment:   total.Round(2),
		TotalInterest:  total.Sub(principal).Round(2),
	}, nil
}

// SumPayments adds up payment amounts.
func SumPayments(payments []*LoanPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// NewLoanView builds the client view of l. Payments must be loaded on l.
func NewLoanView(l *Loan) *LoanView {
	paid := SumPayments(l.Payments)
	remaining := l.Amount.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	v := &LoanView{Loan: l, TotalPaid: paid, Remaining: remaining}
	if a, err := CalculateAmortization(l.Amount, l.Interest, l.Term); err == nil {
		v.Amortization = a
	}
	return v
}
