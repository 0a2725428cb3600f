package usecases

import (
	"context"
	"errors"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/domain/repositories"
	"bank-ledger.backend/pkg/logger"
	"go.uber.org/zap"
)

// IdentityUsecase maps identity-provider subjects to local callers
type IdentityUsecase struct {
	userRepo      repositories.UserRepository
	customerRepo  repositories.CustomerRepository
	autoProvision bool
}

// NewIdentityUsecase creates a new identity usecase
func NewIdentityUsecase(
	userRepo repositories.UserRepository,
	customerRepo repositories.CustomerRepository,
	autoProvision bool,
) *IdentityUsecase {
	return &IdentityUsecase{
		userRepo:      userRepo,
		customerRepo:  customerRepo,
		autoProvision: autoProvision,
	}
}

// ResolveCaller loads the user for identity, provisioning a CUSTOMER user on
// first sight when enabled, and attaches the caller's customer profile id.
func (u *IdentityUsecase) ResolveCaller(ctx context.Context, identity entities.Identity) (*entities.Caller, error) {
	if identity.Subject == "" {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}

	user, err := u.userRepo.GetByID(ctx, identity.Subject)
	if errors.Is(err, domainerrors.ErrNotFound) {
		user, err = u.provision(ctx, identity)
	}
	if err != nil {
		return nil, err
	}

	caller := &entities.Caller{UserID: user.ID, Role: user.Role}
	if !caller.Role.Valid() {
		logger.Warn(ctx, "User has unknown role", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
		caller.Role = entities.UserRoleCustomer
	}

	customer, err := u.customerRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		caller.CustomerID = &customer.ID
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}
	return caller, nil
}

func (u *IdentityUsecase) provision(ctx context.Context, identity entities.Identity) (*entities.User, error) {
	if !u.autoProvision {
		return nil, domainerrors.Unauthorized("Unknown user")
	}

	user := &entities.User{
		ID:        identity.Subject,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      entities.UserRoleCustomer,
	}
	err := u.userRepo.Create(ctx, user)
	if errors.Is(err, domainerrors.ErrConflict) {
		// provisioned concurrently by another request
		return u.userRepo.GetByID(ctx, identity.Subject)
	}
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Provisioned user", zap.String("user_id", user.ID))
	return user, nil
}

// Me returns the caller's user record and customer profile id
func (u *IdentityUsecase) Me(ctx context.Context, caller *entities.Caller) (*entities.MeResponse, error) {
	if caller == nil || caller.UserID == "" {
		return nil, domainerrors.Unauthorized("Unauthorized")
	}
	user, err := u.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Unknown user")
		}
		return nil, err
	}
	resp := &entities.MeResponse{User: user}
	if caller.CustomerID != nil {
		id := caller.CustomerID.String()
		resp.CustomerID = &id
	}
	return resp, nil
}
