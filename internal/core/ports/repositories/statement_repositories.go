package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// StatementReader defines read operations for statement inputs and stored snapshots.
type StatementReader interface {
	// SumPostedLinesBetween aggregates POSTED lines per account over a date
	// range, restricted to the given account types (all types when empty).
	SumPostedLinesBetween(ctx context.Context, companyID string, from, to time.Time, types []domain.AccountType) ([]domain.PeriodAccountTotal, error)

	// FindCashMovements retrieves every posted entry's net effect on
	// cash/bank-named accounts over a date range, with counter-account names.
	FindCashMovements(ctx context.Context, companyID string, from, to time.Time) ([]domain.CashMovement, error)

	GetTrialBalance(ctx context.Context, companyID, statementID string) (*domain.TrialBalance, error)
	GetBalanceSheet(ctx context.Context, companyID, statementID string) (*domain.BalanceSheet, error)
	GetProfitLoss(ctx context.Context, companyID, statementID string) (*domain.ProfitLossStatement, error)
	GetCashFlow(ctx context.Context, companyID, statementID string) (*domain.CashFlowStatement, error)
}

// StatementWriter persists immutable statement snapshots. Snapshots are
// created once per generation call and never mutated afterward.
type StatementWriter interface {
	SaveTrialBalance(ctx context.Context, tb domain.TrialBalance) error
	SaveBalanceSheet(ctx context.Context, bs domain.BalanceSheet) error
	SaveProfitLoss(ctx context.Context, pl domain.ProfitLossStatement) error
	SaveCashFlow(ctx context.Context, cf domain.CashFlowStatement) error
}

// StatementRepositoryFacade combines all statement repository interfaces.
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
