package usecases

import (
	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"github.com/google/uuid"
)

// Action is what a caller wants to do with a resource
type Action string

const (
	// ActionRead views a resource
	ActionRead Action = "read"
	// ActionOperate changes a resource the way its owner may (deposit, repay, open)
	ActionOperate Action = "operate"
	// ActionAdminister drives state machines and lists across customers
	ActionAdminister Action = "administer"
)

// Authorize is the single access policy of the ledger. Staff may do anything;
// customers may read and operate on resources owned by their own profile.
// owner is the customer id owning the resource, nil for non-owned resources.
func Authorize(caller *entities.Caller, action Action, owner *uuid.UUID) error {
	if caller == nil || caller.UserID == "" {
		return domainerrors.Unauthorized("Unauthorized")
	}
	if caller.IsStaff() {
		return nil
	}
	if action == ActionAdminister {
		return domainerrors.Forbidden("Only staff can perform this action")
	}
	if owner == nil || !caller.Owns(*owner) {
		return domainerrors.Forbidden("You do not have access to this resource")
	}
	return nil
}
