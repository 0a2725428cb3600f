package handlers

import (
	"context"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdentityService resolves the calling user
type IdentityService interface {
	Me(ctx context.Context, caller *entities.Caller) (*entities.MeResponse, error)
}

// CustomerService manages customer profiles
type CustomerService interface {
	CreateCustomer(ctx context.Context, caller *entities.Caller, input *entities.CustomerProfileInput) (*entities.Customer, error)
	GetCustomer(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.Customer, error)
	UpdateCustomer(ctx context.Context, caller *entities.Caller, id uuid.UUID, input *entities.CustomerProfileInput) (*entities.Customer, error)
	ListCustomers(ctx context.Context, caller *entities.Caller, page utils.PaginationParams) ([]*entities.Customer, utils.PaginationMeta, error)
}

// AccountService manages account lifecycle
type AccountService interface {
	CreateAccount(ctx context.Context, caller *entities.Caller, input *entities.CreateAccountInput) (*entities.AccountView, error)
	GetAccount(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.AccountView, error)
	ListAccounts(ctx context.Context, caller *entities.Caller, page utils.PaginationParams) ([]*entities.AccountView, utils.PaginationMeta, error)
	SetAccountStatus(ctx context.Context, caller *entities.Caller, id uuid.UUID, status entities.AccountStatus) (*entities.AccountView, error)
}

// TransactionService applies and lists ledger entries
type TransactionService interface {
	ApplyTransaction(ctx context.Context, caller *entities.Caller, input *entities.CreateTransactionInput) (*entities.Transaction, error)
	ListTransactions(ctx context.Context, caller *entities.Caller, accountID *uuid.UUID, limit int) ([]*entities.TransactionView, error)
}

// LoanService manages loans and repayments
type LoanService interface {
	QuoteLoan(amount, interest decimal.Decimal, term int) (*entities.Amortization, error)
	CreateLoan(ctx context.Context, caller *entities.Caller, input *entities.CreateLoanInput) (*entities.LoanView, error)
	GetLoan(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.LoanView, error)
	ListLoans(ctx context.Context, caller *entities.Caller, page utils.PaginationParams) ([]*entities.Loan, utils.PaginationMeta, error)
	SetLoanStatus(ctx context.Context, caller *entities.Caller, id uuid.UUID, status entities.LoanStatus) (*entities.LoanView, error)
	ApplyLoanPayment(ctx context.Context, caller *entities.Caller, loanID uuid.UUID, input *entities.LoanPaymentInput) (*entities.LoanPayment, error)
	ListLoanPayments(ctx context.Context, caller *entities.Caller, loanID uuid.UUID) ([]*entities.LoanPayment, error)
}
