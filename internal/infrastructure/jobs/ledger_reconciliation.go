package jobs

import (
	"context"
	"sync"
	"time"

	"bank-ledger.backend/internal/usecases"
	"bank-ledger.backend/pkg/logger"
	"go.uber.org/zap"
)

type reconciler interface {
	Run(ctx context.Context) (*usecases.ReconciliationReport, error)
}

// LedgerReconciliationJob periodically checks balances and loan statuses against the ledgers
type LedgerReconciliationJob struct {
	reconciler reconciler
	interval   time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewLedgerReconciliationJob creates the job. A non-positive interval disables it.
func NewLedgerReconciliationJob(r reconciler, interval time.Duration) *LedgerReconciliationJob {
	return &LedgerReconciliationJob{
		reconciler: r,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called
func (j *LedgerReconciliationJob) Start(ctx context.Context) {
	if j.interval <= 0 {
		logger.Info(ctx, "Ledger reconciliation job disabled")
		return
	}
	logger.Info(ctx, "Starting ledger reconciliation job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Ledger reconciliation job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Ledger reconciliation job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

// Stop ends a running Start. Safe to call more than once.
func (j *LedgerReconciliationJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *LedgerReconciliationJob) runOnce(ctx context.Context) {
	report, err := j.reconciler.Run(ctx)
	if err != nil {
		logger.Error(ctx, "Ledger reconciliation failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.Int("accounts_checked", report.AccountsChecked),
		zap.Int("loans_checked", report.LoansChecked),
		zap.Int("balance_mismatches", len(report.BalanceMismatches)),
		zap.Int("uncovered_paid_loans", len(report.UncoveredPaidLoans)),
		zap.Int("repaired_loans", len(report.RepairedLoans)),
	}
	if len(report.BalanceMismatches) > 0 || len(report.UncoveredPaidLoans) > 0 || len(report.RepairedLoans) > 0 {
		logger.Warn(ctx, "Ledger reconciliation found mismatches", fields...)
		return
	}
	logger.Debug(ctx, "Ledger reconciliation clean", fields...)
}
