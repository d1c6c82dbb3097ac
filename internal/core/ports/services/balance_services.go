package services

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade defines the balance aggregator operations.
type BalanceSvcFacade interface {
	// Apply adds debit/credit deltas to one account's balance row for the
	// given financial year, lazily creating the row.
	Apply(ctx context.Context, companyID, accountID, financialYearID string, debitDelta, creditDelta decimal.Decimal, actor string) error

	// GetBalance returns the signed current balance for an account/year
	// pair. An untouched pair reads as zero.
	GetBalance(ctx context.Context, companyID, accountID, financialYearID string) (decimal.Decimal, error)

	// GetBalanceDetail returns the full balance row for an account/year pair.
	GetBalanceDetail(ctx context.Context, companyID, accountID, financialYearID string) (*domain.AccountBalance, error)

	// RecomputeAll replays all posted lines of the year and compares the
	// result to the stored rows. Returns the replayed balances; returns
	// apperrors.ErrIntegrity when any stored row has drifted.
	RecomputeAll(ctx context.Context, companyID, financialYearID string) ([]domain.AccountBalance, error)
}
