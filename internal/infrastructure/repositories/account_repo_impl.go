package repositories

import (
	"context"
	"time"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/infrastructure/models"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates an account. A duplicate account number is ErrConflict.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	if account.ID == uuid.Nil {
		account.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	return translateError(GetDB(ctx, r.db).Create(accountToModel(account)).Error)
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := lockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return accountToEntity(&m), nil
}

// List lists accounts newest first, optionally for a single customer
func (r *AccountRepository) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]*entities.Account, int64, error) {
	byCustomer := func(db *gorm.DB) *gorm.DB {
		if customerID != nil {
			return db.Where("customer_id = ?", *customerID)
		}
		return db
	}

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Account{}).Scopes(byCustomer).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := GetDB(ctx, r.db).Scopes(byCustomer).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var rows []models.Account
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]*entities.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, accountToEntity(&rows[i]))
	}
	return accounts, total, nil
}

// UpdateBalance overwrites the stored balance
func (r *AccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return r.update(ctx, id, map[string]interface{}{"balance": balance})
}

// UpdateStatus overwrites the stored status
func (r *AccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *AccountRepository) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := GetDB(ctx, r.db).Model(&models.Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func accountToModel(a *entities.Account) *models.Account {
	return &models.Account{
		ID:            a.ID,
		CustomerID:    a.CustomerID,
		AccountNumber: a.AccountNumber,
		Type:          string(a.Type),
		Balance:       a.Balance,
		Status:        string(a.Status),
		Tenure:        a.Tenure.Ptr(),
		InterestRate:  a.InterestRate,
		MaturityDate:  a.MaturityDate.Ptr(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func accountToEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		AccountNumber: m.AccountNumber,
		Type:          entities.AccountType(m.Type),
		Balance:       m.Balance,
		Status:        entities.AccountStatus(m.Status),
		Tenure:        null.IntFromPtr(m.Tenure),
		InterestRate:  m.InterestRate,
		MaturityDate:  null.TimeFromPtr(m.MaturityDate),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
