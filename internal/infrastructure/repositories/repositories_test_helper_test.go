package repositories

import (
	"context"
	"testing"
	"time"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/internal/infrastructure/repositories/repotest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return repotest.NewLedgerDB(t)
}

func seedCustomer(t *testing.T, db *gorm.DB, userID string) *entities.Customer {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Create(ctx, &entities.User{
		ID:    userID,
		Email: userID + "@bank.test",
		Role:  entities.UserRoleCustomer,
	}))
	c := &entities.Customer{UserID: userID}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, c))
	return c
}

func seedAccount(t *testing.T, db *gorm.DB, customer *entities.Customer, number string, balance string) *entities.Account {
	t.Helper()
	a := &entities.Account{
		CustomerID:    customer.ID,
		AccountNumber: number,
		Type:          entities.AccountTypeSavings,
		Balance:       decimal.RequireFromString(balance),
		Status:        entities.AccountStatusActive,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, NewAccountRepository(db).Create(context.Background(), a))
	return a
}
