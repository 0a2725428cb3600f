package usecases

import (
	"context"
	"errors"
	"fmt"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/domain/repositories"
	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// AccountConfig holds the account opening rules
type AccountConfig struct {
	MinInitialDeposit decimal.Decimal
	IDMaxAttempts     int
}

// AccountUsecase handles account lifecycle business logic
type AccountUsecase struct {
	uow          repositories.UnitOfWork
	accountRepo  repositories.AccountRepository
	txRepo       repositories.TransactionRepository
	customerRepo repositories.CustomerRepository
	cfg          AccountConfig
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(
	uow repositories.UnitOfWork,
	accountRepo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	customerRepo repositories.CustomerRepository,
	cfg AccountConfig,
) *AccountUsecase {
	return &AccountUsecase{
		uow:          uow,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

// CreateAccount opens an account together with its initial deposit entry
func (u *AccountUsecase) CreateAccount(ctx context.Context, caller *entities.Caller, input *entities.CreateAccountInput) (view *entities.AccountView, err error) {
	defer func() { observe("create_account", err) }()

	if !input.Type.Valid() {
		return nil, domainerrors.InvalidArgument("Invalid account type")
	}
	if err := validateMoneyScale("Initial deposit", input.InitialDeposit); err != nil {
		return nil, err
	}
	if input.InitialDeposit.LessThan(u.cfg.MinInitialDeposit) {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("Initial deposit must be at least %s", u.cfg.MinInitialDeposit.String()))
	}
	if input.Type == entities.AccountTypeFixedDeposit {
		if input.Tenure == nil || *input.Tenure < 1 {
			return nil, domainerrors.InvalidArgument("Tenure is required for fixed deposit accounts")
		}
	} else if input.Tenure != nil {
		return nil, domainerrors.InvalidArgument("Tenure is only allowed for fixed deposit accounts")
	}

	customer, err := u.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Customer not found")
		}
		return nil, err
	}
	if err := Authorize(caller, ActionOperate, &customer.ID); err != nil {
		return nil, err
	}

	var account *entities.Account
	err = retryOnCollision(ctx, u.cfg.IDMaxAttempts, "account number", func() error {
		account, err = u.openAccount(ctx, customer.ID, input)
		return err
	})
	if err != nil {
		var appErr *domainerrors.AppError
		if !errors.As(err, &appErr) {
			logger.Error(ctx, "Failed to open account", zap.String("customer_id", customer.ID.String()), zap.Error(err))
		}
		return nil, err
	}

	logger.Info(ctx, "Account opened",
		zap.String("account_id", account.ID.String()),
		zap.String("type", string(account.Type)),
		zap.String("initial_deposit", input.InitialDeposit.String()),
	)
	return entities.NewAccountView(account), nil
}

func (u *AccountUsecase) openAccount(ctx context.Context, customerID uuid.UUID, input *entities.CreateAccountInput) (*entities.Account, error) {
	number, err := generateAccountNumber()
	if err != nil {
		return nil, err
	}
	now := timeNow()
	account := &entities.Account{
		ID:            utils.GenerateUUIDv7(),
		CustomerID:    customerID,
		AccountNumber: number,
		Type:          input.Type,
		Balance:       input.InitialDeposit,
		Status:        entities.AccountStatusActive,
		CreatedAt:     now,
	}
	if input.Type == entities.AccountTypeFixedDeposit {
		account.Tenure = null.IntFrom(*input.Tenure)
		account.InterestRate = decimal.NewNullDecimal(entities.CalculateInterestRate(*input.Tenure))
		account.MaturityDate = null.TimeFrom(entities.MaturityDate(now, *input.Tenure))
	}

	ref, err := generateReference(InitialDepositRefPrefix, now)
	if err != nil {
		return nil, err
	}
	initial := &entities.Transaction{
		AccountID:   account.ID,
		Type:        entities.TransactionTypeDeposit,
		Amount:      input.InitialDeposit,
		Reference:   ref,
		Description: null.StringFrom(InitialDepositDescription),
		CreatedAt:   now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accountRepo.Create(txCtx, account); err != nil {
			return err
		}
		return u.txRepo.Create(txCtx, initial)
	})
	if err != nil {
		return nil, err
	}
	account.Transactions = []*entities.Transaction{initial}
	return account, nil
}

// GetAccount returns an account with its full number and entries newest first
func (u *AccountUsecase) GetAccount(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.AccountView, error) {
	account, err := u.getAuthorized(ctx, caller, id, ActionRead)
	if err != nil {
		return nil, err
	}
	txs, err := u.txRepo.ListByAccountID(ctx, account.ID, 0)
	if err != nil {
		return nil, err
	}
	account.Transactions = txs
	return entities.NewAccountView(account), nil
}

// ListAccounts lists accounts newest first with masked numbers. Customers see only their own.
func (u *AccountUsecase) ListAccounts(ctx context.Context, caller *entities.Caller, page utils.PaginationParams) ([]*entities.AccountView, utils.PaginationMeta, error) {
	if caller == nil || caller.UserID == "" {
		return nil, utils.PaginationMeta{}, domainerrors.Unauthorized("Unauthorized")
	}

	var scope *uuid.UUID
	if !caller.IsStaff() {
		if caller.CustomerID == nil {
			return []*entities.AccountView{}, utils.CalculateMeta(0, page.Page, page.Limit), nil
		}
		scope = caller.CustomerID
	}

	accounts, total, err := u.accountRepo.List(ctx, scope, page.Limit, page.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	views := make([]*entities.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, entities.NewAccountView(a.Masked()))
	}
	return views, utils.CalculateMeta(total, page.Page, page.Limit), nil
}

// SetAccountStatus moves an account through its status machine (staff only)
func (u *AccountUsecase) SetAccountStatus(ctx context.Context, caller *entities.Caller, id uuid.UUID, status entities.AccountStatus) (view *entities.AccountView, err error) {
	defer func() { observe("set_account_status", err) }()

	if err := Authorize(caller, ActionAdminister, nil); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainerrors.InvalidArgument("Invalid account status")
	}

	var account *entities.Account
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		locked, err := u.accountRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Account not found")
			}
			return err
		}
		if !locked.Status.CanTransitionTo(status) {
			logger.Warn(ctx, "Account status change rejected",
				zap.String("account_id", id.String()),
				zap.String("from", string(locked.Status)),
				zap.String("to", string(status)),
			)
			return domainerrors.InvalidState(fmt.Sprintf("Cannot change account status from %s to %s", locked.Status, status))
		}
		if err := u.accountRepo.UpdateStatus(txCtx, id, status); err != nil {
			return err
		}
		locked.Status = status
		account = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Account status changed", zap.String("account_id", id.String()), zap.String("status", string(status)))
	return entities.NewAccountView(account), nil
}

func (u *AccountUsecase) getAuthorized(ctx context.Context, caller *entities.Caller, id uuid.UUID, action Action) (*entities.Account, error) {
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Account not found")
		}
		return nil, err
	}
	if err := Authorize(caller, action, &account.CustomerID); err != nil {
		return nil, err
	}
	return account, nil
}
