package services

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/dto"
)

// FinancialYearSvcFacade owns the accounting period lifecycle: the single
// active year per company, its closing snapshot, and carry-forward into the
// next period.
type FinancialYearSvcFacade interface {
	CreateFinancialYear(ctx context.Context, companyID string, req dto.CreateFinancialYearRequest, creatorID string) (*domain.FinancialYear, error)
	GetActiveFinancialYear(ctx context.Context, companyID string) (*domain.FinancialYear, error)
	GetFinancialYearByID(ctx context.Context, companyID, financialYearID string) (*domain.FinancialYear, error)
	ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error)
	CloseFinancialYear(ctx context.Context, companyID, financialYearID, remarks, closedBy string) (*domain.FinancialYear, error)
	CarryForward(ctx context.Context, companyID, fromFYID, toFYID string, actor string) error
}
