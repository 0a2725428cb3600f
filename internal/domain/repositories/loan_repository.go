package repositories

import (
	"context"

	"bank-ledger.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// LoanRepository defines loan data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) error
	// GetByID honours UnitOfWork.WithLock on ctx
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error)
	// List returns loans newest first; a nil customerID lists all
	List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]*entities.Loan, int64, error)
	ListByStatus(ctx context.Context, statuses ...entities.LoanStatus) ([]*entities.Loan, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.LoanStatus) error
}

// LoanPaymentRepository defines loan repayment operations. Payments are never updated or deleted.
type LoanPaymentRepository interface {
	Create(ctx context.Context, payment *entities.LoanPayment) error
	// ListByLoanID returns payments newest first
	ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.LoanPayment, error)
}
