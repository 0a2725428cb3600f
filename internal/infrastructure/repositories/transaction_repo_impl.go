package repositories

import (
	"context"
	"time"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/internal/infrastructure/models"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// TransactionRepository implements ledger entry operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a ledger entry. A duplicate reference is ErrConflict.
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = utils.GenerateUUIDv7()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	m := &models.Transaction{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Reference:   tx.Reference,
		Description: tx.Description.Ptr(),
		CreatedAt:   tx.CreatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// ListByAccountID lists the entries of one account newest first
func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]*entities.Transaction, error) {
	return r.List(ctx, entities.TransactionFilter{AccountID: &accountID, Limit: limit})
}

// List lists entries newest first, filtered by account or by owning customer
func (r *TransactionRepository) List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	query := GetDB(ctx, r.db).Model(&models.Transaction{}).Select("transactions.*")
	if filter.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *filter.AccountID)
	}
	if filter.CustomerID != nil {
		query = query.Joins("JOIN accounts ON accounts.id = transactions.account_id").
			Where("accounts.customer_id = ?", *filter.CustomerID)
	}
	query = query.Order("transactions.created_at DESC").Order("transactions.id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.Transaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Transaction, 0, len(rows))
	for i := range rows {
		items = append(items, transactionToEntity(&rows[i]))
	}
	return items, nil
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Type:        entities.TransactionType(m.Type),
		Amount:      m.Amount,
		Reference:   m.Reference,
		Description: null.StringFromPtr(m.Description),
		CreatedAt:   m.CreatedAt,
	}
}
