package usecases

import (
	"context"
	"errors"
	"strings"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/domain/repositories"
	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerUsecase handles customer profile business logic
type CustomerUsecase struct {
	customerRepo repositories.CustomerRepository
	accountRepo  repositories.AccountRepository
	loanRepo     repositories.LoanRepository
}

// NewCustomerUsecase creates a new customer usecase
func NewCustomerUsecase(
	customerRepo repositories.CustomerRepository,
	accountRepo repositories.AccountRepository,
	loanRepo repositories.LoanRepository,
) *CustomerUsecase {
	return &CustomerUsecase{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		loanRepo:     loanRepo,
	}
}

// CreateCustomer creates the calling user's profile. A user has at most one.
func (u *CustomerUsecase) CreateCustomer(ctx context.Context, caller *entities.Caller, input *entities.CustomerProfileInput) (*entities.Customer, error) {
	if caller == nil || caller.UserID == "" {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}
	if err := validateProfile(input); err != nil {
		return nil, err
	}
	if caller.CustomerID != nil {
		return nil, domainerrors.Conflict("Customer profile already exists")
	}

	customer := &entities.Customer{UserID: caller.UserID}
	input.Apply(customer)
	if err := u.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("Customer profile already exists")
		}
		logger.Error(ctx, "Failed to create customer", zap.String("user_id", caller.UserID), zap.Error(err))
		return nil, err
	}
	caller.CustomerID = &customer.ID
	return customer, nil
}

// GetCustomer returns a profile with its masked accounts and loans
func (u *CustomerUsecase) GetCustomer(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.Customer, error) {
	customer, err := u.getAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	accounts, _, err := u.accountRepo.List(ctx, &customer.ID, 0, 0)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		customer.Accounts = append(customer.Accounts, a.Masked())
	}

	loans, _, err := u.loanRepo.List(ctx, &customer.ID, 0, 0)
	if err != nil {
		return nil, err
	}
	customer.Loans = loans
	return customer, nil
}

// UpdateCustomer applies the provided profile fields
func (u *CustomerUsecase) UpdateCustomer(ctx context.Context, caller *entities.Caller, id uuid.UUID, input *entities.CustomerProfileInput) (*entities.Customer, error) {
	if err := validateProfile(input); err != nil {
		return nil, err
	}
	customer, err := u.getAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	input.Apply(customer)
	if err := u.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Customer not found")
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists all profiles (staff only)
func (u *CustomerUsecase) ListCustomers(ctx context.Context, caller *entities.Caller, page utils.PaginationParams) ([]*entities.Customer, utils.PaginationMeta, error) {
	if err := Authorize(caller, ActionAdminister, nil); err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	items, total, err := u.customerRepo.List(ctx, page.Limit, page.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, page.Page, page.Limit), nil
}

func (u *CustomerUsecase) getAuthorized(ctx context.Context, caller *entities.Caller, id uuid.UUID) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Customer not found")
		}
		return nil, err
	}
	if err := Authorize(caller, ActionOperate, &customer.ID); err != nil {
		return nil, err
	}
	return customer, nil
}

func validateProfile(input *entities.CustomerProfileInput) error {
	if input == nil {
		return domainerrors.InvalidArgument("Profile is required")
	}
	if input.EmploymentStatus != nil {
		status := strings.ToUpper(strings.TrimSpace(*input.EmploymentStatus))
		if !entities.EmploymentStatus(status).Valid() {
			return domainerrors.InvalidArgument("Invalid employment status")
		}
		input.EmploymentStatus = &status
	}
	if input.AnnualIncome != nil && input.AnnualIncome.IsNegative() {
		return domainerrors.InvalidArgument("Annual income cannot be negative")
	}
	if input.AnnualIncome != nil {
		if err := validateMoneyScale("Annual income", *input.AnnualIncome); err != nil {
			return err
		}
	}
	return nil
}
