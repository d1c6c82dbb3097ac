package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// FinancialYearReader defines read operations for financial year data.
type FinancialYearReader interface {
	// FindFinancialYearByID retrieves a year scoped to a company.
	FindFinancialYearByID(ctx context.Context, companyID, financialYearID string) (*domain.FinancialYear, error)

	// FindActiveFinancialYear retrieves the single active year of a company.
	FindActiveFinancialYear(ctx context.Context, companyID string) (*domain.FinancialYear, error)

	// FindFinancialYearByDate retrieves the year whose range covers the date.
	FindFinancialYearByDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialYear, error)

	// ListFinancialYears retrieves all years of a company, newest first.
	ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error)
}

// FinancialYearWriter defines write operations for financial year data.
type FinancialYearWriter interface {
	// CreateAndActivate inserts the new year and deactivates the previously
	// active one in a single transaction (single-writer per tenant).
	CreateAndActivate(ctx context.Context, fy domain.FinancialYear) error

	// MarkClosed stores the closing snapshot and sets the closed flags.
	MarkClosed(ctx context.Context, fy domain.FinancialYear) error
}

// FinancialYearRepositoryFacade combines all financial year repository interfaces.
type FinancialYearRepositoryFacade interface {
	FinancialYearReader
	FinancialYearWriter
}
