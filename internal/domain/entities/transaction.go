package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType represents the kind of ledger entry
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is an append-only ledger entry against an account
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
	Description null.String     `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SignedAmount returns the amount with the sign of its effect on the balance.
// Outgoing transfers are recognised by a description mentioning "to".
func (t *Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeWithdrawal:
		return t.Amount.Neg()
	case TransactionTypeTransfer:
		if t.Description.Valid && strings.Contains(t.Description.String, "to") {
			return t.Amount.Neg()
		}
	}
	return t.Amount
}

// CreateTransactionInput represents a deposit or withdrawal request
type CreateTransactionInput struct {
	AccountID   uuid.UUID       `json:"accountId" binding:"required"`
	Type        TransactionType `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description *string         `json:"description"`
}

// TransactionFilter narrows a transaction listing
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CustomerID *uuid.UUID
	Limit      int
}

// TransactionView is the client projection of a transaction
type TransactionView struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Type      TransactionType `json:"type"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Date      time.Time       `json:"date"`
}

// TransactionStatusCompleted is reported for every persisted transaction.
const TransactionStatusCompleted = "COMPLETED"

// NewTransactionView projects t for display.
func NewTransactionView(t *Transaction) *TransactionView {
	return &TransactionView{
		ID:        t.ID,
		AccountID: t.AccountID,
		Amount:    t.SignedAmount(),
		Name:      transactionName(t),
		Category:  transactionCategory(t.Type),
		Type:      t.Type,
		Reference: t.Reference,
		Status:    TransactionStatusCompleted,
		Date:      t.CreatedAt,
	}
}

func transactionName(t *Transaction) string {
	if t.Description.Valid && t.Description.String != "" {
		return t.Description.String
	}
	switch t.Type {
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdrawal:
		return "Withdrawal"
	default:
		return "Transfer"
	}
}

func transactionCategory(t TransactionType) string {
	switch t {
	case TransactionTypeDeposit:
		return "Income"
	case TransactionTypeWithdrawal:
		return "Expense"
	default:
		return "Transfer"
	}
}
