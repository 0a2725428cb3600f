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
	"go.uber.org/zap"
)

// LoanUsecase handles loan origination, repayment and status changes
type LoanUsecase struct {
	uow           repositories.UnitOfWork
	loanRepo      repositories.LoanRepository
	paymentRepo   repositories.LoanPaymentRepository
	customerRepo  repositories.CustomerRepository
	idMaxAttempts int
}

// NewLoanUsecase creates a new loan usecase
func NewLoanUsecase(
	uow repositories.UnitOfWork,
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.LoanPaymentRepository,
	customerRepo repositories.CustomerRepository,
	idMaxAttempts int,
) *LoanUsecase {
	return &LoanUsecase{
		uow:           uow,
		loanRepo:      loanRepo,
		paymentRepo:   paymentRepo,
		customerRepo:  customerRepo,
		idMaxAttempts: idMaxAttempts,
	}
}

// QuoteLoan computes the amortization schedule without persisting anything
func (u *LoanUsecase) QuoteLoan(amount, interest decimal.Decimal, term int) (*entities.Amortization, error) {
	if err := validateLoanTerms(amount, interest, term); err != nil {
		return nil, err
	}
	a, err := entities.CalculateAmortization(amount, interest, term)
	if err != nil {
		return nil, domainerrors.InvalidArgument("Amortization is undefined for these terms")
	}
	return a, nil
}

// CreateLoan originates a loan. Self-originated loans start PENDING, staff-originated ones ACTIVE.
func (u *LoanUsecase) CreateLoan(ctx context.Context, caller *entities.Caller, input *entities.CreateLoanInput) (view *entities.LoanView, err error) {
	defer func() { observe("create_loan", err) }()

	if err := validateLoanTerms(input.Amount, input.Interest, input.Term); err != nil {
		return nil, err
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

	status := entities.LoanStatusPending
	if caller.IsStaff() {
		status = entities.LoanStatusActive
	}

	var loan *entities.Loan
	err = retryOnCollision(ctx, u.idMaxAttempts, "loan number", func() error {
		now := timeNow()
		number, err := generateReference(LoanNumberPrefix, now)
		if err != nil {
			return err
		}
		candidate := &entities.Loan{
			CustomerID: customer.ID,
			LoanNumber: number,
			Amount:     input.Amount,
			Interest:   input.Interest,
			Term:       input.Term,
			Status:     status,
			CreatedAt:  now,
		}
		if err := u.loanRepo.Create(ctx, candidate); err != nil {
			return err
		}
		loan = candidate
		return nil
	})
	if err != nil {
		var appErr *domainerrors.AppError
		if !errors.As(err, &appErr) {
			logger.Error(ctx, "Failed to create loan", zap.String("customer_id", customer.ID.String()), zap.Error(err))
		}
		return nil, err
	}

	logger.Info(ctx, "Loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("amount", loan.Amount.String()),
		zap.String("status", string(loan.Status)),
	)
	return entities.NewLoanView(loan), nil
}

// ApplyLoanPayment records a repayment and marks the loan PAID once the
// principal is covered. Runs on the locked loan row.
func (u *LoanUsecase) ApplyLoanPayment(ctx context.Context, caller *entities.Caller, loanID uuid.UUID, input *entities.LoanPaymentInput) (payment *entities.LoanPayment, err error) {
	defer func() { observe("apply_loan_payment", err) }()

	if caller == nil || caller.UserID == "" {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}
	if err := validateAmount("Amount", input.Amount); err != nil {
		return nil, err
	}

	var paidOff bool
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		loan, err := u.loanRepo.GetByID(u.uow.WithLock(txCtx), loanID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Loan not found")
			}
			return err
		}
		if err := Authorize(caller, ActionOperate, &loan.CustomerID); err != nil {
			return err
		}
		if !loan.Status.AcceptsPayments() {
			return domainerrors.InvalidState(fmt.Sprintf("Cannot apply payment to a %s loan", loan.Status))
		}

		payments, err := u.paymentRepo.ListByLoanID(txCtx, loan.ID)
		if err != nil {
			return err
		}
		paid := entities.SumPayments(payments)
		remaining := loan.Amount.Sub(paid)
		if input.Amount.GreaterThan(remaining) {
			return domainerrors.ExceedsBalance(fmt.Sprintf("Payment exceeds remaining balance of %s", remaining.StringFixed(2)))
		}

		entry := &entities.LoanPayment{LoanID: loan.ID, Amount: input.Amount, CreatedAt: timeNow()}
		if err := u.paymentRepo.Create(txCtx, entry); err != nil {
			return err
		}
		if paid.Add(input.Amount).GreaterThanOrEqual(loan.Amount) {
			if err := u.loanRepo.UpdateStatus(txCtx, loan.ID, entities.LoanStatusPaid); err != nil {
				return err
			}
			paidOff = true
		}
		payment = entry
		return nil
	})
	if err != nil {
		fields := []zap.Field{zap.String("loan_id", loanID.String()), zap.String("amount", input.Amount.String()), zap.Error(err)}
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) {
			logger.Warn(ctx, "Loan payment rejected", fields...)
		} else {
			logger.Error(ctx, "Failed to apply loan payment", fields...)
		}
		return nil, err
	}

	logger.Info(ctx, "Loan payment applied",
		zap.String("loan_id", loanID.String()),
		zap.String("amount", input.Amount.String()),
		zap.Bool("paid_off", paidOff),
	)
	return payment, nil
}

// SetLoanStatus moves a loan through its status machine (staff only). PAID
// additionally requires the payments to cover the principal.
func (u *LoanUsecase) SetLoanStatus(ctx context.Context, caller *entities.Caller, loanID uuid.UUID, status entities.LoanStatus) (view *entities.LoanView, err error) {
	defer func() { observe("set_loan_status", err) }()

	if err := Authorize(caller, ActionAdminister, nil); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainerrors.InvalidArgument("Invalid loan status")
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		loan, err := u.loanRepo.GetByID(u.uow.WithLock(txCtx), loanID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Loan not found")
			}
			return err
		}
		if !loan.Status.CanTransitionTo(status) {
			return domainerrors.InvalidState(fmt.Sprintf("Cannot change loan status from %s to %s", loan.Status, status))
		}
		payments, err := u.paymentRepo.ListByLoanID(txCtx, loan.ID)
		if err != nil {
			return err
		}
		if status == entities.LoanStatusPaid && entities.SumPayments(payments).LessThan(loan.Amount) {
			return domainerrors.InvalidState("Loan payments do not cover the principal")
		}
		if err := u.loanRepo.UpdateStatus(txCtx, loan.ID, status); err != nil {
			return err
		}
		loan.Status = status
		loan.Payments = payments
		view = entities.NewLoanView(loan)
		return nil
	})
	if err != nil {
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) {
			logger.Warn(ctx, "Loan status change rejected", zap.String("loan_id", loanID.String()), zap.String("to", string(status)), zap.Error(err))
		}
		return nil, err
	}

	logger.Info(ctx, "Loan status changed", zap.String("loan_id", loanID.String()), zap.String("status", string(status)))
	return view, nil
}

// GetLoan returns a loan with its payments, schedule and repayment totals
func (u *LoanUsecase) GetLoan(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.LoanView, error) {
	loan, err := u.getAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	payments, err := u.paymentRepo.ListByLoanID(ctx, loan.ID)
	if err != nil {
		return nil, err
	}
	loan.Payments = payments
	return entities.NewLoanView(loan), nil
}

// ListLoans lists loans newest first. Customers see only their own.
func (u *LoanUsecase) ListLoans(ctx context.Context, caller *entities.Caller, page utils.PaginationParams) ([]*entities.Loan, utils.PaginationMeta, error) {
	if caller == nil || caller.UserID == "" {
		return nil, utils.PaginationMeta{}, domainerrors.Unauthorized("Unauthorized")
	}

	var scope *uuid.UUID
	if !caller.IsStaff() {
		if caller.CustomerID == nil {
			return []*entities.Loan{}, utils.CalculateMeta(0, page.Page, page.Limit), nil
		}
		scope = caller.CustomerID
	}

	loans, total, err := u.loanRepo.List(ctx, scope, page.Limit, page.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return loans, utils.CalculateMeta(total, page.Page, page.Limit), nil
}

// ListLoanPayments lists the payments of a loan newest first
func (u *LoanUsecase) ListLoanPayments(ctx context.Context, caller *entities.Caller, loanID uuid.UUID) ([]*entities.LoanPayment, error) {
	loan, err := u.getAuthorized(ctx, caller, loanID)
	if err != nil {
		return nil, err
	}
	return u.paymentRepo.ListByLoanID(ctx, loan.ID)
}

func (u *LoanUsecase) getAuthorized(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.Loan, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Loan not found")
		}
		return nil, err
	}
	if err := Authorize(caller, ActionRead, &loan.CustomerID); err != nil {
		return nil, err
	}
	return loan, nil
}

func validateLoanTerms(amount, interest decimal.Decimal, term int) error {
	if err := validateAmount("Amount", amount); err != nil {
		return err
	}
	if err := validateRate("Interest", interest); err != nil {
		return err
	}
	if term <= 0 {
		return domainerrors.InvalidArgument("Term must be positive")
	}
	return nil
}
