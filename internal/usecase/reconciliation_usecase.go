package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
)

// ErrInconsistentLedger is returned when balances disagree with the stored entries.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not match entries")

// ReconciliationUseCase handles balance reconciliation operations
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	concurrency int
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	concurrency int,
	m *metrics.Metrics,
) *ReconciliationUseCase {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		concurrency: concurrency,
		metrics:     m,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         int64
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	Totals            EntryTotals
	Adjustments       decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// ReconcileAccount recomputes the balance an account should have from its
// adjustments and stored entries and compares it with the recorded one.
// Balance and sums come from one snapshot so a posting that commits
// mid-check cannot show up as a discrepancy.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID int64) (*ReconciliationResult, error) {
	snap, err := uc.ledgerRepo.AccountSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calculated := snap.Expected()
	difference := snap.Balance.Sub(calculated)

	return &ReconciliationResult{
		AccountID:         accountID,
		RecordedBalance:   snap.Balance,
		CalculatedBalance: calculated,
		Difference:        difference,
		Totals:            snap.Totals,
		Adjustments:       snap.Adjustments,
		IsReconciled:      difference.IsZero(),
		LastChecked:       time.Now().UTC(),
	}, nil
}

// ReconcileAllAccounts reconciles all accounts in the system
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	accounts, err := uc.accountRepo.List(ctx, maxReconcileAccounts, 0)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make([]*ReconciliationResult, 0, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for _, account := range accounts {
		id := account.ID
		g.Go(func() error {
			result, err := uc.ReconcileAccount(gctx, id)
			if errors.Is(err, domain.ErrAccountNotFound) {
				// deleted after the listing
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to reconcile account %d: %w", id, err)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].AccountID < results[j].AccountID })

	return results, nil
}

// CheckLedgerConsistency compares the sum of all balances with the sum the
// stored entries and adjustments imply.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	totalBalance, totalExpected, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return err
	}

	if !totalBalance.Equal(totalExpected) {
		return fmt.Errorf(
			"%w: balances=%s expected=%s difference=%s",
			ErrInconsistentLedger,
			totalBalance.String(),
			totalExpected.String(),
			totalBalance.Sub(totalExpected).String(),
		)
	}

	return nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	LedgerConsistent   bool
	CheckedAt          time.Time
}

// GenerateReconciliationReport generates a comprehensive reconciliation report
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	ledgerErr := uc.CheckLedgerConsistency(ctx)

	report := &ReconciliationReport{
		TotalAccounts:    len(results),
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: ledgerErr == nil,
		CheckedAt:        time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		uc.metrics.ReconciliationDiscrepancies.Set(float64(len(report.Discrepancies)))
	}

	return report, nil
}
