package usecases

import (
	"context"
	"errors"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/domain/repositories"
	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// TransactionUsecase applies deposits and withdrawals and serves the ledger read path
type TransactionUsecase struct {
	uow           repositories.UnitOfWork
	accountRepo   repositories.AccountRepository
	txRepo        repositories.TransactionRepository
	idMaxAttempts int
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(
	uow repositories.UnitOfWork,
	accountRepo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	idMaxAttempts int,
) *TransactionUsecase {
	return &TransactionUsecase{
		uow:           uow,
		accountRepo:   accountRepo,
		txRepo:        txRepo,
		idMaxAttempts: idMaxAttempts,
	}
}

// ApplyTransaction changes an account balance and appends the matching ledger
// entry atomically. All checks run against the locked account row.
func (u *TransactionUsecase) ApplyTransaction(ctx context.Context, caller *entities.Caller, input *entities.CreateTransactionInput) (tx *entities.Transaction, err error) {
	defer func() { observe("apply_transaction", err) }()

	if caller == nil || caller.UserID == "" {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}
	switch input.Type {
	case entities.TransactionTypeDeposit, entities.TransactionTypeWithdrawal:
	case entities.TransactionTypeTransfer:
		return nil, domainerrors.InvalidArgument("Transfers are not supported")
	default:
		return nil, domainerrors.InvalidArgument("Invalid transaction type")
	}
	if err := validateAmount("Amount", input.Amount); err != nil {
		return nil, err
	}

	err = retryOnCollision(ctx, u.idMaxAttempts, "transaction reference", func() error {
		tx, err = u.apply(ctx, caller, input)
		return err
	})
	if err != nil {
		u.logRejection(ctx, input, err)
		return nil, err
	}

	logger.Info(ctx, "Transaction applied",
		zap.String("account_id", input.AccountID.String()),
		zap.String("type", string(input.Type)),
		zap.String("amount", input.Amount.String()),
		zap.String("reference", tx.Reference),
	)
	return tx, nil
}

func (u *TransactionUsecase) apply(ctx context.Context, caller *entities.Caller, input *entities.CreateTransactionInput) (*entities.Transaction, error) {
	var created *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		account, err := u.accountRepo.GetByID(u.uow.WithLock(txCtx), input.AccountID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Account not found")
			}
			return err
		}
		if err := Authorize(caller, ActionOperate, &account.CustomerID); err != nil {
			return err
		}
		if account.Status != entities.AccountStatusActive {
			return domainerrors.InvalidState("Account is not active")
		}

		balance := account.Balance.Add(input.Amount)
		if input.Type == entities.TransactionTypeWithdrawal {
			if input.Amount.GreaterThan(account.Balance) {
				return domainerrors.InsufficientFunds("Insufficient balance")
			}
			balance = account.Balance.Sub(input.Amount)
		}

		now := timeNow()
		ref, err := generateReference(TransactionRefPrefix, now)
		if err != nil {
			return err
		}
		entry := &entities.Transaction{
			AccountID: account.ID,
			Type:      input.Type,
			Amount:    input.Amount,
			Reference: ref,
			CreatedAt: now,
		}
		if input.Description != nil {
			entry.Description = null.StringFrom(*input.Description)
		}

		if err := u.accountRepo.UpdateBalance(txCtx, account.ID, balance); err != nil {
			return err
		}
		if err := u.txRepo.Create(txCtx, entry); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (u *TransactionUsecase) logRejection(ctx context.Context, input *entities.CreateTransactionInput, err error) {
	fields := []zap.Field{
		zap.String("account_id", input.AccountID.String()),
		zap.String("type", string(input.Type)),
		zap.String("amount", input.Amount.String()),
		zap.Error(err),
	}
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		logger.Warn(ctx, "Transaction rejected", fields...)
		return
	}
	logger.Error(ctx, "Failed to apply transaction", fields...)
}

// ListTransactions returns ledger entries newest first. Customers only see
// entries on their own accounts.
func (u *TransactionUsecase) ListTransactions(ctx context.Context, caller *entities.Caller, accountID *uuid.UUID, limit int) ([]*entities.TransactionView, error) {
	if caller == nil || caller.UserID == "" {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}

	filter := entities.TransactionFilter{
		AccountID: accountID,
		Limit:     utils.ClampLimit(limit, DefaultTransactionLimit, MaxTransactionLimit),
	}
	if accountID != nil {
		account, err := u.accountRepo.GetByID(ctx, *accountID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("Account not found")
			}
			return nil, err
		}
		if err := Authorize(caller, ActionRead, &account.CustomerID); err != nil {
			return nil, err
		}
	}
	if !caller.IsStaff() {
		if caller.CustomerID == nil {
			return []*entities.TransactionView{}, nil
		}
		filter.CustomerID = caller.CustomerID
	}

	txs, err := u.txRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]*entities.TransactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, entities.NewTransactionView(t))
	}
	return views, nil
}
