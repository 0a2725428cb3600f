package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/pkg/crypto"
	"bank-ledger.backend/pkg/logger"
	"go.uber.org/zap"
)

var (
	generateAccountNumber = func() (string, error) {
		return crypto.RandomDigits(AccountNumberDigits)
	}
	generateReference = func(prefix string, at time.Time) (string, error) {
		n, err := crypto.RandomIntn(1000)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%d-%03d", prefix, at.UnixMilli(), n), nil
	}
)

// isUniqueViolation reports whether err is a raw store collision, not a conflict
// already decided by business logic.
func isUniqueViolation(err error) bool {
	var appErr *domainerrors.AppError
	return errors.Is(err, domainerrors.ErrConflict) && !errors.As(err, &appErr)
}

// retryOnCollision runs fn until it stops failing on a unique index, at most
// attempts times. Each attempt must regenerate its identifiers.
func retryOnCollision(ctx context.Context, attempts int, what string, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		err := fn()
		if !isUniqueViolation(err) {
			return err
		}
		logger.Warn(ctx, "Identifier collision, retrying",
			zap.String("identifier", what),
			zap.Int("attempt", i),
		)
	}
	return domainerrors.Conflict(fmt.Sprintf("could not allocate a unique %s", what))
}
