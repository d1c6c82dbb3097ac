package repositories

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliation records.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation with its items.
	FindReconciliationByID(ctx context.Context, companyID, reconciliationID string) (*domain.Reconciliation, error)

	// ListReconciliationsByAccount retrieves reconciliations for an account,
	// newest statement date first.
	ListReconciliationsByAccount(ctx context.Context, companyID, accountID string) ([]domain.Reconciliation, error)
}

// ReconciliationWriter defines write operations for reconciliation records.
type ReconciliationWriter interface {
	// SaveReconciliation persists a new reconciliation header.
	SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error

	// SaveItems appends items to an existing reconciliation.
	SaveItems(ctx context.Context, reconciliationID string, items []domain.ReconciliationItem) error

	// UpdateStatus flips the reconciliation lifecycle status.
	UpdateStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
