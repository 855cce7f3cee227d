package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/metrics"
)

// poster applies postings to account balances inside a transaction.
// Every mutation goes through it: reverse the recorded effect, then apply
// the new one.
type poster struct {
	accountRepo AccountRepository
}

// lock locks every account touched by the posting sets in ascending id
// order and returns them keyed by id.
func (p *poster) lock(ctx context.Context, tx Transaction, sets ...[]domain.Posting) (map[int64]*domain.Account, error) {
	ids := domain.AccountIDs(sets...)
	if len(ids) == 0 {
		return map[int64]*domain.Account{}, nil
	}

	accounts, err := p.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	m := make(map[int64]*domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}

	return m, nil
}

// post applies postings in the given order.
func (p *poster) post(ctx context.Context, tx Transaction, postings []domain.Posting, at time.Time) error {
	for _, posting := range postings {
		var err error

		switch {
		case posting.IsCredit():
			_, err = p.accountRepo.Credit(ctx, tx, posting.AccountID, posting.Amount, at)
		case posting.Amount.IsNegative():
			_, err = p.accountRepo.Debit(ctx, tx, posting.AccountID, posting.Amount.Neg(), at)
		default:
			continue
		}

		if err != nil {
			return fmt.Errorf("post to account %d: %w", posting.AccountID, err)
		}
	}

	return nil
}

// replace reverses old and applies cur, locking every touched account first.
// Either side may be nil for create and delete.
func (p *poster) replace(ctx context.Context, tx Transaction, old, cur []domain.Posting, at time.Time) (map[int64]*domain.Account, error) {
	accounts, err := p.lock(ctx, tx, old, cur)
	if err != nil {
		return nil, err
	}

	if err := p.post(ctx, tx, domain.Reverse(old), at); err != nil {
		return nil, err
	}

	if err := p.post(ctx, tx, cur, at); err != nil {
		return nil, err
	}

	return accounts, nil
}

// validateMoney checks the amount and normalizes the currency. An empty
// currency is returned as is and later defaults to the account currency.
func validateMoney(amount decimal.Decimal, currency string) (string, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return "", err
	}

	currency = domain.NormalizeCurrency(currency)
	if currency != "" {
		if err := domain.ValidateCurrency(currency); err != nil {
			return "", err
		}
	}

	return currency, nil
}

// recorder logs and counts engine operations.
type recorder struct {
	kind    string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func (r recorder) record(operation string, id int64, amount decimal.Decimal, start time.Time, err error) {
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("kind", r.kind).
			Str("operation", operation).
			Int64("id", id).
			Msg("ledger mutation failed")

		if r.metrics != nil {
			r.metrics.MutationErrors.WithLabelValues(r.kind, errorType(err)).Inc()
		}
		return
	}

	r.logger.Info().
		Str("kind", r.kind).
		Str("operation", operation).
		Int64("id", id).
		Str("amount", amount.StringFixed(domain.AmountScale)).
		Dur("took", time.Since(start)).
		Msg("ledger mutation applied")

	if r.metrics != nil {
		r.metrics.Mutations.WithLabelValues(r.kind, operation).Inc()
		r.metrics.MutationDuration.WithLabelValues(r.kind, operation).Observe(time.Since(start).Seconds())
		if operation != "delete" {
			r.metrics.MutationAmount.WithLabelValues(r.kind).Observe(amount.InexactFloat64())
		}
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrTransactionNotFound):
		return "entry_not_found"
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrCategoryKindMismatch):
		return "classification"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrMissingCaller):
		return "missing_caller"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
