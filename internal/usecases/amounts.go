package usecases

import (
	"fmt"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"github.com/shopspring/decimal"
)

// validateAmount rejects money the store would round or overflow.
func validateAmount(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return domainerrors.InvalidArgument(field + " must be positive")
	}
	return validateMoneyScale(field, d)
}

func validateMoneyScale(field string, d decimal.Decimal) error {
	if !entities.FitsScale(d, entities.MoneyScale) {
		return domainerrors.InvalidArgument(fmt.Sprintf("%s must have at most %d decimal places", field, entities.MoneyScale))
	}
	if !entities.ValidMoney(d) {
		return domainerrors.InvalidArgument(field + " is too large")
	}
	return nil
}

func validateRate(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return domainerrors.InvalidArgument(field + " must be positive")
	}
	if !entities.FitsScale(d, entities.RateScale) {
		return domainerrors.InvalidArgument(fmt.Sprintf("%s must have at most %d decimal places", field, entities.RateScale))
	}
	if !entities.ValidRate(d) {
		return domainerrors.InvalidArgument(field + " is too large")
	}
	return nil
}
