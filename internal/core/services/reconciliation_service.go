package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
)

var (
	ErrReconciliationFinalized = errors.New("reconciliation is finalized")
	ErrNotAssetAccount         = errors.New("reconciliation requires an asset account")
)

// reconciliationService explains the gap between book and bank balances for
// an asset account. It never writes to the ledger.
type reconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	accountRepo        portsrepo.AccountReader
	journalRepo        portsrepo.JournalReader
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(reconciliationRepo portsrepo.ReconciliationRepositoryFacade, accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		accountRepo:        accountRepo,
		journalRepo:        journalRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CreateReconciliation opens a reconciliation for an asset account against an
// external statement. The difference is book balance minus bank balance.
func (s *reconciliationService) CreateReconciliation(ctx context.Context, companyID string, req dto.CreateReconciliationRequest, creatorID string) (*domain.Reconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}
	if account.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: %s is %s (%w)", ErrNotAssetAccount, account.Code, account.AccountType, apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rec := domain.Reconciliation{
		ReconciliationID: uuid.NewString(),
		CompanyID:        companyID,
		AccountID:        req.AccountID,
		StatementDate:    req.StatementDate,
		OpeningBalance:   req.OpeningBalance,
		BookBalance:      req.BookBalance,
		BankBalance:      req.BankBalance,
		Difference:       req.BookBalance.Sub(req.BankBalance),
		Status:           domain.ReconciliationOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.reconciliationRepo.SaveReconciliation(ctx, rec); err != nil {
		logger.Error("Failed to save reconciliation", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	logger.Info("Reconciliation created",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("account_id", rec.AccountID),
		slog.String("difference", rec.Difference.String()))
	return &rec, nil
}

// AddItems appends matched/unmatched statement lines to an open
// reconciliation. Items referencing a ledger entry must resolve to one.
func (s *reconciliationService) AddItems(ctx context.Context, companyID, reconciliationID string, req dto.AddReconciliationItemsRequest, updaterID string) (*domain.Reconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, companyID, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	if rec.Status == domain.ReconciliationFinalized {
		return nil, fmt.Errorf("%w: %s (%w)", ErrReconciliationFinalized, reconciliationID, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	items := make([]domain.ReconciliationItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.EntryID != "" {
			entry, err := s.journalRepo.FindEntryByID(ctx, item.EntryID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve entry %s: %w", item.EntryID, err)
			}
			if entry.CompanyID != companyID {
				return nil, fmt.Errorf("entry %s: %w", item.EntryID, apperrors.ErrNotFound)
			}
		}
		items = append(items, domain.ReconciliationItem{
			ItemID:           uuid.NewString(),
			ReconciliationID: reconciliationID,
			EntryID:          item.EntryID,
			Description:      item.Description,
			BookAmount:       item.BookAmount,
			BankAmount:       item.BankAmount,
			IsMatched:        item.IsMatched,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     updaterID,
				LastUpdatedAt: now,
				LastUpdatedBy: updaterID,
			},
		})
	}

	if err := s.reconciliationRepo.SaveItems(ctx, reconciliationID, items); err != nil {
		logger.Error("Failed to save reconciliation items", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to save reconciliation items: %w", err)
	}

	rec.Items = append(rec.Items, items...)
	logger.Info("Reconciliation items added",
		slog.String("reconciliation_id", reconciliationID),
		slog.Int("item_count", len(items)))
	return rec, nil
}

// FinalizeReconciliation locks the record. Finalized reconciliations accept
// no further items.
func (s *reconciliationService) FinalizeReconciliation(ctx context.Context, companyID, reconciliationID string, updaterID string) (*domain.Reconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, companyID, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	if rec.Status == domain.ReconciliationFinalized {
		return nil, fmt.Errorf("%w: %s (%w)", ErrReconciliationFinalized, reconciliationID, apperrors.ErrConflict)
	}

	if err := s.reconciliationRepo.UpdateStatus(ctx, reconciliationID, domain.ReconciliationFinalized); err != nil {
		logger.Error("Failed to finalize reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to finalize reconciliation: %w", err)
	}

	rec.Status = domain.ReconciliationFinalized
	rec.LastUpdatedAt = time.Now().UTC()
	rec.LastUpdatedBy = updaterID

	logger.Info("Reconciliation finalized", slog.String("reconciliation_id", reconciliationID))
	return rec, nil
}

// GetReconciliation retrieves a reconciliation with its items.
func (s *reconciliationService) GetReconciliation(ctx context.Context, companyID, reconciliationID string) (*domain.Reconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, companyID, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	return rec, nil
}

// ListReconciliations retrieves an account's reconciliations, newest first.
func (s *reconciliationService) ListReconciliations(ctx context.Context, companyID, accountID string) ([]domain.Reconciliation, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	recs, err := s.reconciliationRepo.ListReconciliationsByAccount(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	return recs, nil
}
