package usecases

import (
	"context"
	"testing"

	"bank-ledger.backend/internal/domain/entities"
	repoimpl "bank-ledger.backend/internal/infrastructure/repositories"
	"bank-ledger.backend/internal/infrastructure/repositories/repotest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db        *gorm.DB
	accounts  *repoimpl.AccountRepository
	txs       *repoimpl.TransactionRepository
	loans     *repoimpl.LoanRepository
	payments  *repoimpl.LoanPaymentRepository
	customers *repoimpl.CustomerRepository

	accountUC *AccountUsecase
	txUC      *TransactionUsecase
	loanUC    *LoanUsecase
	reconUC   *ReconciliationUsecase

	customer *entities.Customer
	owner    *entities.Caller
	staff    *entities.Caller
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := repotest.NewLedgerDB(t)
	f := &ledgerFixture{
		db:        db,
		accounts:  repoimpl.NewAccountRepository(db),
		txs:       repoimpl.NewTransactionRepository(db),
		loans:     repoimpl.NewLoanRepository(db),
		payments:  repoimpl.NewLoanPaymentRepository(db),
		customers: repoimpl.NewCustomerRepository(db),
	}
	uow := repoimpl.NewUnitOfWork(db)
	f.accountUC = NewAccountUsecase(uow, f.accounts, f.txs, f.customers, AccountConfig{
		MinInitialDeposit: decimal.NewFromInt(500),
		IDMaxAttempts:     5,
	})
	f.txUC = NewTransactionUsecase(uow, f.accounts, f.txs, 5)
	f.loanUC = NewLoanUsecase(uow, f.loans, f.payments, f.customers, 5)
	f.reconUC = NewReconciliationUsecase(uow, f.accounts, f.txs, f.loans, f.payments)

	ctx := context.Background()
	users := repoimpl.NewUserRepository(db)
	require.NoError(t, users.Create(ctx, &entities.User{ID: "user_owner", Email: "owner@bank.test", Role: entities.UserRoleCustomer}))
	require.NoError(t, users.Create(ctx, &entities.User{ID: "user_staff", Email: "staff@bank.test", Role: entities.UserRoleEmployee}))
	f.customer = &entities.Customer{UserID: "user_owner"}
	require.NoError(t, f.customers.Create(ctx, f.customer))

	f.owner = &entities.Caller{UserID: "user_owner", Role: entities.UserRoleCustomer, CustomerID: &f.customer.ID}
	f.staff = &entities.Caller{UserID: "user_staff", Role: entities.UserRoleEmployee}
	return f
}

func (f *ledgerFixture) openAccount(t *testing.T, deposit string) *entities.AccountView {
	t.Helper()
	view, err := f.accountUC.CreateAccount(context.Background(), f.owner, &entities.CreateAccountInput{
		CustomerID:     f.customer.ID,
		Type:           entities.AccountTypeSavings,
		InitialDeposit: decimal.RequireFromString(deposit),
	})
	require.NoError(t, err)
	return view
}

func (f *ledgerFixture) apply(caller *entities.Caller, accountID uuid.UUID, txType entities.TransactionType, amount string) (*entities.Transaction, error) {
	return f.txUC.ApplyTransaction(context.Background(), caller, &entities.CreateTransactionInput{
		AccountID: accountID,
		Type:      txType,
		Amount:    decimal.RequireFromString(amount),
	})
}

// requireBalanceMatchesLedger asserts the stored balance equals the signed sum of entries.
func (f *ledgerFixture) requireBalanceMatchesLedger(t *testing.T, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	ctx := context.Background()
	stored, err := f.accounts.GetByID(ctx, accountID)
	require.NoError(t, err)
	entries, err := f.txs.ListByAccountID(ctx, accountID, 0)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.SignedAmount())
	}
	require.True(t, sum.Equal(stored.Balance), "balance %s != ledger %s", stored.Balance, sum)
	return stored.Balance
}
