package repositories

import (
	"context"

	"bank-ledger.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// CustomerRepository defines customer profile operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*entities.Customer, error)
	Update(ctx context.Context, customer *entities.Customer) error
	List(ctx context.Context, limit, offset int) ([]*entities.Customer, int64, error)
}
