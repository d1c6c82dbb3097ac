package repositories

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account scoped to a company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID, scoped to a company.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode retrieves an account by its company-unique code.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListAccounts retrieves all accounts for a company, ordered by code.
	// The chart of accounts is small enough to load whole for hierarchy and
	// statement generation.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// HasPostedLines reports whether any posted journal line references the account.
	HasPostedLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable fields of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
