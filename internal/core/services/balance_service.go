package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService incrementally maintains per-account, per-financial-year
// balances and provides the replay-based drift check.
type balanceService struct {
	balanceRepo portsrepo.BalanceRepositoryFacade
	accountRepo portsrepo.AccountReader
	fyRepo      portsrepo.FinancialYearReader
}

// NewBalanceService creates a new balance aggregator service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, accountRepo portsrepo.AccountReader, fyRepo portsrepo.FinancialYearReader) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo: balanceRepo,
		accountRepo: accountRepo,
		fyRepo:      fyRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// Apply adds debit/credit deltas to one account's balance row for the given
// financial year. The row is created lazily on first touch; the year must
// exist and be open.
func (s *balanceService) Apply(ctx context.Context, companyID, accountID, financialYearID string, debitDelta, creditDelta decimal.Decimal, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if debitDelta.IsNegative() || creditDelta.IsNegative() {
		return fmt.Errorf("%w: balance deltas must not be negative", apperrors.ErrValidation)
	}

	fy, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, financialYearID)
	if err != nil {
		return fmt.Errorf("failed to find financial year %s: %w", financialYearID, err)
	}
	if fy.IsClosed {
		return fmt.Errorf("financial year %s is closed: %w", fy.YearName, apperrors.ErrConflict)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	deltas := map[string]domain.BalanceDelta{
		accountID: {Debit: debitDelta, Credit: creditDelta},
	}
	if err := s.balanceRepo.ApplyDeltas(ctx, *fy, deltas, actor, time.Now().UTC()); err != nil {
		logger.Error("Failed to apply balance deltas", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("financial_year_id", financialYearID))
		return fmt.Errorf("failed to apply balance deltas: %w", err)
	}
	return nil
}

// GetBalance returns the signed current balance for an account/year pair.
// An untouched pair reads as zero rather than an error.
func (s *balanceService) GetBalance(ctx context.Context, companyID, accountID, financialYearID string) (decimal.Decimal, error) {
	detail, err := s.GetBalanceDetail(ctx, companyID, accountID, financialYearID)
	if err != nil {
		return decimal.Zero, err
	}
	return detail.CurrentBalance, nil
}

// GetBalanceDetail returns the full balance row for an account/year pair,
// synthesizing a zero row when the pair is untouched.
func (s *balanceService) GetBalanceDetail(ctx context.Context, companyID, accountID, financialYearID string) (*domain.AccountBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if _, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, financialYearID); err != nil {
		return nil, fmt.Errorf("failed to find financial year %s: %w", financialYearID, err)
	}

	balance, err := s.balanceRepo.FindBalance(ctx, accountID, financialYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lazy rows: no posting has touched this pair yet.
			return &domain.AccountBalance{
				CompanyID:       companyID,
				AccountID:       accountID,
				FinancialYearID: financialYearID,
				OpeningBalance:  decimal.Zero,
				DebitTotal:      decimal.Zero,
				CreditTotal:     decimal.Zero,
				CurrentBalance:  decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to find balance: %w", err)
	}
	return balance, nil
}

// RecomputeAll replays every posted line of the financial year and compares
// the result to the stored incremental rows. It returns the replayed
// balances; when any stored row disagrees it returns apperrors.ErrIntegrity
// naming the drifted accounts. Stored rows are never overwritten here.
func (s *balanceService) RecomputeAll(ctx context.Context, companyID, financialYearID string) ([]domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, financialYearID); err != nil {
		return nil, fmt.Errorf("failed to find financial year %s: %w", financialYearID, err)
	}

	replayed, err := s.balanceRepo.SumPostedLines(ctx, companyID, financialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to replay posted lines: %w", err)
	}

	stored, err := s.balanceRepo.ListBalanceDetails(ctx, companyID, financialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored balances: %w", err)
	}

	storedByAccount := make(map[string]domain.AccountBalanceDetail, len(stored))
	for _, b := range stored {
		storedByAccount[b.AccountID] = b
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accounts))
	for _, a := range accounts {
		accountTypes[a.AccountID] = a.AccountType
	}

	var drifted []string
	result := make([]domain.AccountBalance, 0, len(storedByAccount))

	// Every account with either stored or replayed activity is checked.
	checked := make(map[string]struct{})
	for accountID := range replayed {
		checked[accountID] = struct{}{}
	}
	for accountID := range storedByAccount {
		checked[accountID] = struct{}{}
	}

	for accountID := range checked {
		accountType, ok := accountTypes[accountID]
		if !ok {
			return nil, fmt.Errorf("account %s referenced by balances: %w", accountID, apperrors.ErrNotFound)
		}

		delta := replayed[accountID] // Zero delta when only opening balances exist
		opening := decimal.Zero
		if row, ok := storedByAccount[accountID]; ok {
			opening = row.OpeningBalance
		}

		current, err := accounting.SignedBalance(accountType, opening, delta.Debit, delta.Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
		}

		rebuilt := domain.AccountBalance{
			CompanyID:       companyID,
			AccountID:       accountID,
			FinancialYearID: financialYearID,
			OpeningBalance:  opening,
			DebitTotal:      delta.Debit,
			CreditTotal:     delta.Credit,
			CurrentBalance:  current,
		}
		result = append(result, rebuilt)

		row, exists := storedByAccount[accountID]
		if !exists {
			if !delta.Debit.IsZero() || !delta.Credit.IsZero() {
				drifted = append(drifted, accountID)
			}
			continue
		}
		if !row.DebitTotal.Equal(rebuilt.DebitTotal) ||
			!row.CreditTotal.Equal(rebuilt.CreditTotal) ||
			!row.CurrentBalance.Equal(rebuilt.CurrentBalance) {
			drifted = append(drifted, accountID)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].AccountID < result[j].AccountID })

	if len(drifted) > 0 {
		sort.Strings(drifted)
		logger.Error("Balance drift detected", slog.String("financial_year_id", financialYearID), slog.Int("drifted_accounts", len(drifted)))
		return result, fmt.Errorf("%w: incremental balances diverge from replay for accounts %s",
			apperrors.ErrIntegrity, strings.Join(drifted, ", "))
	}

	logger.Info("Balance recompute matched incremental path", slog.String("financial_year_id", financialYearID), slog.Int("account_count", len(result)))
	return result, nil
}
