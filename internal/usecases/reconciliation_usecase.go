package usecases

import (
	"context"
	"errors"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/domain/repositories"
	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mismatch kinds reported by reconciliation
const (
	MismatchAccountBalance    = "account_balance"
	MismatchLoanPaidUncovered = "loan_paid_uncovered"
	MismatchLoanUnpaidCovered = "loan_unpaid_covered"
)

// BalanceMismatch is an account whose stored balance differs from its ledger
type BalanceMismatch struct {
	AccountID uuid.UUID
	Balance   decimal.Decimal
	Ledger    decimal.Decimal
}

// ReconciliationReport summarizes one reconciliation run
type ReconciliationReport struct {
	AccountsChecked   int
	LoansChecked      int
	BalanceMismatches []BalanceMismatch
	// PAID loans whose payments do not cover the principal
	UncoveredPaidLoans []uuid.UUID
	// covered ACTIVE/OVERDUE loans moved to PAID
	RepairedLoans []uuid.UUID
}

// ReconciliationUsecase checks stored balances and loan statuses against the append-only ledgers
type ReconciliationUsecase struct {
	uow         repositories.UnitOfWork
	accountRepo repositories.AccountRepository
	txRepo      repositories.TransactionRepository
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.LoanPaymentRepository
}

// NewReconciliationUsecase creates a new reconciliation usecase
func NewReconciliationUsecase(
	uow repositories.UnitOfWork,
	accountRepo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.LoanPaymentRepository,
) *ReconciliationUsecase {
	return &ReconciliationUsecase{
		uow:         uow,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

// Run performs one reconciliation pass and publishes the mismatch gauges
func (u *ReconciliationUsecase) Run(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{}
	if err := u.reconcileAccounts(ctx, report); err != nil {
		return nil, err
	}
	if err := u.reconcileLoans(ctx, report); err != nil {
		return nil, err
	}

	metrics.SetReconciliationMismatches(MismatchAccountBalance, len(report.BalanceMismatches))
	metrics.SetReconciliationMismatches(MismatchLoanPaidUncovered, len(report.UncoveredPaidLoans))
	metrics.SetReconciliationMismatches(MismatchLoanUnpaidCovered, len(report.RepairedLoans))
	return report, nil
}

func (u *ReconciliationUsecase) reconcileAccounts(ctx context.Context, report *ReconciliationReport) error {
	accounts, _, err := u.accountRepo.List(ctx, nil, 0, 0)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		balance, ledger, err := u.accountLedger(ctx, a.ID)
		if err != nil {
			return err
		}
		report.AccountsChecked++
		if !ledger.Equal(balance) {
			logger.Warn(ctx, "Account balance does not match ledger",
				zap.String("account_id", a.ID.String()),
				zap.String("balance", balance.String()),
				zap.String("ledger", ledger.String()),
			)
			report.BalanceMismatches = append(report.BalanceMismatches, BalanceMismatch{AccountID: a.ID, Balance: balance, Ledger: ledger})
		}
	}
	return nil
}

// accountLedger reads the balance and the signed entry sum of one account
// under its row lock so a concurrent mutation lands wholly before or after.
func (u *ReconciliationUsecase) accountLedger(ctx context.Context, id uuid.UUID) (balance, ledger decimal.Decimal, err error) {
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		account, err := u.accountRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		txs, err := u.txRepo.ListByAccountID(txCtx, id, 0)
		if err != nil {
			return err
		}
		balance = account.Balance
		ledger = decimal.Zero
		for _, t := range txs {
			ledger = ledger.Add(t.SignedAmount())
		}
		return nil
	})
	return balance, ledger, err
}

func (u *ReconciliationUsecase) reconcileLoans(ctx context.Context, report *ReconciliationReport) error {
	loans, err := u.loanRepo.ListByStatus(ctx, entities.LoanStatusActive, entities.LoanStatusOverdue, entities.LoanStatusPaid)
	if err != nil {
		return err
	}
	for _, l := range loans {
		report.LoansChecked++
		if l.Status == entities.LoanStatusPaid {
			payments, err := u.paymentRepo.ListByLoanID(ctx, l.ID)
			if err != nil {
				return err
			}
			if entities.SumPayments(payments).LessThan(l.Amount) {
				logger.Warn(ctx, "Paid loan is not covered by payments", zap.String("loan_id", l.ID.String()))
				report.UncoveredPaidLoans = append(report.UncoveredPaidLoans, l.ID)
			}
			continue
		}

		repaired, err := u.repairIfCovered(ctx, l.ID)
		if err != nil {
			return err
		}
		if repaired {
			report.RepairedLoans = append(report.RepairedLoans, l.ID)
		}
	}
	return nil
}

// repairIfCovered marks a covered ACTIVE/OVERDUE loan PAID, re-checking on the locked row
func (u *ReconciliationUsecase) repairIfCovered(ctx context.Context, loanID uuid.UUID) (bool, error) {
	var repaired bool
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		loan, err := u.loanRepo.GetByID(u.uow.WithLock(txCtx), loanID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil
			}
			return err
		}
		if !loan.Status.AcceptsPayments() {
			return nil
		}
		payments, err := u.paymentRepo.ListByLoanID(txCtx, loan.ID)
		if err != nil {
			return err
		}
		if entities.SumPayments(payments).LessThan(loan.Amount) {
			return nil
		}
		if err := u.loanRepo.UpdateStatus(txCtx, loan.ID, entities.LoanStatusPaid); err != nil {
			return err
		}
		logger.Warn(ctx, "Repaired covered loan status", zap.String("loan_id", loan.ID.String()), zap.String("from", string(loan.Status)))
		repaired = true
		return nil
	})
	return repaired, err
}
