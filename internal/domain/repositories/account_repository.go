package repositories

import (
	"context"

	"bank-ledger.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	// GetByID honours UnitOfWork.WithLock on ctx
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	// List returns accounts newest first; a nil customerID lists all
	List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]*entities.Account, int64, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error
}

// TransactionRepository defines ledger entry operations. Entries are never updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	// ListByAccountID returns entries newest first; limit <= 0 returns all
	ListByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]*entities.Transaction, error)
	List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error)
}
