package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// BalanceReader defines read operations for per-account, per-year balances.
type BalanceReader interface {
	// FindBalance retrieves the balance row for an account/year pair.
	// Returns apperrors.ErrNotFound when no posting has touched the pair.
	FindBalance(ctx context.Context, accountID, financialYearID string) (*domain.AccountBalance, error)

	// ListBalanceDetails retrieves every balance row of a financial year
	// joined with its account's code, name and type.
	ListBalanceDetails(ctx context.Context, companyID, financialYearID string) ([]domain.AccountBalanceDetail, error)

	// SumPostedLines replays every POSTED journal line dated inside the
	// financial year and returns the per-account debit/credit totals.
	SumPostedLines(ctx context.Context, companyID, financialYearID string) (map[string]domain.BalanceDelta, error)
}

// BalanceWriter defines write operations for balance rows.
type BalanceWriter interface {
	// ApplyDeltas locks the touched balance rows (lazily creating missing
	// ones), adds the deltas and recomputes each signed current balance,
	// all inside one transaction.
	ApplyDeltas(ctx context.Context, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta, actor string, now time.Time) error

	// SeedOpeningBalances creates balance rows carrying opening balances
	// into a financial year. Fails if a row already exists for the pair.
	SeedOpeningBalances(ctx context.Context, balances []domain.AccountBalance) error
}

// BalanceRepositoryFacade combines all balance repository interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
