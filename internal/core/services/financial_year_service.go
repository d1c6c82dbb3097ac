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
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrYearOverlap      = errors.New("financial year overlaps an existing year")
	ErrYearSpan         = errors.New("financial year span must be between 10 and 13 months")
	ErrYearClosed       = errors.New("financial year is already closed")
	ErrYearNotClosed    = errors.New("source financial year is not closed")
	ErrTargetYearClosed = errors.New("target financial year is closed")
)

// financialYearService owns the period lifecycle: opening the single active
// year, closing it with a snapshot, and carrying balances forward.
type financialYearService struct {
	fyRepo      portsrepo.FinancialYearRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewFinancialYearService creates a new financial year lifecycle service.
func NewFinancialYearService(fyRepo portsrepo.FinancialYearRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.FinancialYearSvcFacade {
	return &financialYearService{
		fyRepo:      fyRepo,
		balanceRepo: balanceRepo,
	}
}

var _ portssvc.FinancialYearSvcFacade = (*financialYearService)(nil)

// CreateFinancialYear opens a new year and makes it the company's active one.
// The span must run 10 to 13 months and must not overlap an existing year.
func (s *financialYearService) CreateFinancialYear(ctx context.Context, companyID string, req dto.CreateFinancialYearRequest, creatorID string) (*domain.FinancialYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.StartDate.Before(req.EndDate) {
		return nil, fmt.Errorf("%w: start date must precede end date", apperrors.ErrValidation)
	}
	if err := validateYearSpan(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	existing, err := s.fyRepo.ListFinancialYears(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial years: %w", err)
	}
	for _, other := range existing {
		if rangesOverlap(req.StartDate, req.EndDate, other.StartDate, other.EndDate) {
			return nil, fmt.Errorf("%w: %s (%w)", ErrYearOverlap, other.YearName, apperrors.ErrConflict)
		}
	}

	now := time.Now().UTC()
	fy := domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		CompanyID:       companyID,
		YearName:        req.YearName,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsActive:        true,
		IsClosed:        false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.fyRepo.CreateAndActivate(ctx, fy); err != nil {
		logger.Error("Failed to create financial year", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create financial year: %w", err)
	}

	logger.Info("Financial year created",
		slog.String("financial_year_id", fy.FinancialYearID),
		slog.String("year_name", fy.YearName),
		slog.String("company_id", companyID))
	return &fy, nil
}

// GetActiveFinancialYear retrieves the company's single active year.
func (s *financialYearService) GetActiveFinancialYear(ctx context.Context, companyID string) (*domain.FinancialYear, error) {
	fy, err := s.fyRepo.FindActiveFinancialYear(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active financial year: %w", err)
	}
	return fy, nil
}

// GetFinancialYearByID retrieves a year scoped to a company.
func (s *financialYearService) GetFinancialYearByID(ctx context.Context, companyID, financialYearID string) (*domain.FinancialYear, error) {
	fy, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, financialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find financial year %s: %w", financialYearID, err)
	}
	return fy, nil
}

// ListFinancialYears retrieves all years of a company, newest first.
func (s *financialYearService) ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error) {
	years, err := s.fyRepo.ListFinancialYears(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial years: %w", err)
	}
	return years, nil
}

// CloseFinancialYear freezes a year. Its closing snapshot captures every
// account's position at close; postings into the year are rejected afterwards.
func (s *financialYearService) CloseFinancialYear(ctx context.Context, companyID, financialYearID, remarks, closedBy string) (*domain.FinancialYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fy, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, financialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find financial year %s: %w", financialYearID, err)
	}
	if fy.IsClosed {
		return nil, fmt.Errorf("%w: %s (%w)", ErrYearClosed, fy.YearName, apperrors.ErrConflict)
	}

	details, err := s.balanceRepo.ListBalanceDetails(ctx, companyID, financialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for closing: %w", err)
	}

	now := time.Now().UTC()
	snapshot := domain.ClosingSnapshot{
		SnapshotAt: now,
		Accounts:   make([]domain.ClosingAccountBalance, 0, len(details)),
	}
	for _, d := range details {
		snapshot.Accounts = append(snapshot.Accounts, domain.ClosingAccountBalance{
			AccountID:      d.AccountID,
			Code:           d.Code,
			Name:           d.Name,
			AccountType:    d.AccountType,
			DebitTotal:     d.DebitTotal,
			CreditTotal:    d.CreditTotal,
			ClosingBalance: d.CurrentBalance,
		})
	}

	fy.IsClosed = true
	fy.IsActive = false
	fy.ClosedAt = &now
	fy.ClosedBy = closedBy
	fy.ClosingRemarks = remarks
	fy.ClosingSnapshot = &snapshot
	fy.LastUpdatedAt = now
	fy.LastUpdatedBy = closedBy

	if err := s.fyRepo.MarkClosed(ctx, *fy); err != nil {
		logger.Error("Failed to close financial year", slog.String("error", err.Error()), slog.String("financial_year_id", financialYearID))
		return nil, fmt.Errorf("failed to close financial year: %w", err)
	}

	logger.Info("Financial year closed",
		slog.String("financial_year_id", financialYearID),
		slog.String("year_name", fy.YearName),
		slog.Int("snapshot_accounts", len(snapshot.Accounts)))
	return fy, nil
}

// CarryForward seeds the target year's opening balances from the source
// year's closing snapshot. Only balance-sheet accounts carry forward; income
// and expense accounts restart each year at zero. The source must be closed
// and the target open.
func (s *financialYearService) CarryForward(ctx context.Context, companyID, fromFYID, toFYID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, fromFYID)
	if err != nil {
		return fmt.Errorf("failed to find source financial year %s: %w", fromFYID, err)
	}
	if !from.IsClosed || from.ClosingSnapshot == nil {
		return fmt.Errorf("%w: %s (%w)", ErrYearNotClosed, from.YearName, apperrors.ErrConflict)
	}

	to, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, toFYID)
	if err != nil {
		return fmt.Errorf("failed to find target financial year %s: %w", toFYID, err)
	}
	if to.IsClosed {
		return fmt.Errorf("%w: %s (%w)", ErrTargetYearClosed, to.YearName, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	seeds := make([]domain.AccountBalance, 0, len(from.ClosingSnapshot.Accounts))
	for _, a := range from.ClosingSnapshot.Accounts {
		switch a.AccountType {
		case domain.Asset, domain.Liability, domain.Equity:
		default:
			continue
		}
		if a.ClosingBalance.Equal(decimal.Zero) {
			continue
		}
		current, err := accounting.SignedBalance(a.AccountType, a.ClosingBalance, decimal.Zero, decimal.Zero)
		if err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
		}
		seeds = append(seeds, domain.AccountBalance{
			CompanyID:       companyID,
			AccountID:       a.AccountID,
			FinancialYearID: toFYID,
			OpeningBalance:  a.ClosingBalance,
			DebitTotal:      decimal.Zero,
			CreditTotal:     decimal.Zero,
			CurrentBalance:  current,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		})
	}

	if len(seeds) == 0 {
		logger.Info("Carry-forward found no balance-sheet accounts to seed", slog.String("from_financial_year_id", fromFYID))
		return nil
	}

	if err := s.balanceRepo.SeedOpeningBalances(ctx, seeds); err != nil {
		logger.Error("Failed to seed opening balances", slog.String("error", err.Error()), slog.String("to_financial_year_id", toFYID))
		return fmt.Errorf("failed to seed opening balances: %w", err)
	}

	logger.Info("Opening balances carried forward",
		slog.String("from_financial_year_id", fromFYID),
		slog.String("to_financial_year_id", toFYID),
		slog.Int("seeded_accounts", len(seeds)))
	return nil
}

// validateYearSpan allows fiscal periods of roughly a year, including short
// or extended first years.
func validateYearSpan(start, end time.Time) error {
	if end.Before(start.AddDate(0, 10, 0)) {
		return fmt.Errorf("%w (%w)", ErrYearSpan, apperrors.ErrValidation)
	}
	if end.After(start.AddDate(0, 13, 0)) {
		return fmt.Errorf("%w (%w)", ErrYearSpan, apperrors.ErrValidation)
	}
	return nil
}

// rangesOverlap reports whether two inclusive date ranges intersect.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
