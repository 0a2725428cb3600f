package usecases

import (
	"strings"

	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/pkg/metrics"
)

// observe counts a ledger operation by outcome
func observe(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = strings.ToLower(domainerrors.FromError(err).Code)
	}
	metrics.ObserveOperation(operation, outcome)
}
