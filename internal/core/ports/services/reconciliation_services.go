package services

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/dto"
)

// ReconciliationSvcFacade defines the reconciliation engine operations.
// Read-only with respect to the ledger: it produces explanatory records for
// the banking collaborator and never mutates ledger balances.
type ReconciliationSvcFacade interface {
	CreateReconciliation(ctx context.Context, companyID string, req dto.CreateReconciliationRequest, creatorID string) (*domain.Reconciliation, error)
	AddItems(ctx context.Context, companyID, reconciliationID string, req dto.AddReconciliationItemsRequest, updaterID string) (*domain.Reconciliation, error)
	FinalizeReconciliation(ctx context.Context, companyID, reconciliationID string, updaterID string) (*domain.Reconciliation, error)
	GetReconciliation(ctx context.Context, companyID, reconciliationID string) (*domain.Reconciliation, error)
	ListReconciliations(ctx context.Context, companyID, accountID string) ([]domain.Reconciliation, error)
}
