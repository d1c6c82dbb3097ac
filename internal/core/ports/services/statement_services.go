package services

import (
	"context"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// StatementSvcFacade defines financial statement generation. All four
// reports are pure derivations over aggregated balances; each call persists
// an immutable snapshot and regeneration against an unchanged ledger yields
// identical totals.
type StatementSvcFacade interface {
	TrialBalance(ctx context.Context, companyID, financialYearID string, asOf time.Time) (*domain.TrialBalance, error)
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheet, error)
	ProfitLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.ProfitLossStatement, error)
	CashFlow(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowStatement, error)

	GetTrialBalance(ctx context.Context, companyID, statementID string) (*domain.TrialBalance, error)
	GetBalanceSheet(ctx context.Context, companyID, statementID string) (*domain.BalanceSheet, error)
	GetProfitLoss(ctx context.Context, companyID, statementID string) (*domain.ProfitLossStatement, error)
	GetCashFlow(ctx context.Context, companyID, statementID string) (*domain.CashFlowStatement, error)
}
