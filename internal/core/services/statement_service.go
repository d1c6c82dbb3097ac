package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// statementService derives the four financial statements from aggregated
// balances. Every generation call persists an immutable snapshot;
// regenerating against an unchanged ledger yields identical totals.
type statementService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	balanceRepo   portsrepo.BalanceReader
	fyRepo        portsrepo.FinancialYearReader
}

// NewStatementService creates a new financial statement generator.
func NewStatementService(statementRepo portsrepo.StatementRepositoryFacade, balanceRepo portsrepo.BalanceReader, fyRepo portsrepo.FinancialYearReader) portssvc.StatementSvcFacade {
	return &statementService{
		statementRepo: statementRepo,
		balanceRepo:   balanceRepo,
		fyRepo:        fyRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// TrialBalance snapshots every active account's balance split into
// nonnegative debit/credit columns.
func (s *statementService) TrialBalance(ctx context.Context, companyID, financialYearID string, asOf time.Time) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.fyRepo.FindFinancialYearByID(ctx, companyID, financialYearID); err != nil {
		return nil, fmt.Errorf("failed to find financial year %s: %w", financialYearID, err)
	}

	details, err := s.balanceRepo.ListBalanceDetails(ctx, companyID, financialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(details))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, d := range details {
		if !d.IsActive {
			continue
		}
		debit, credit := accounting.SplitSigned(d.AccountType, d.CurrentBalance)
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   d.AccountID,
			Code:        d.Code,
			AccountName: d.Name,
			AccountType: d.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		totalDebit = totalDebit.Add(debit)
		totalCredit = totalCredit.Add(credit)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	tb := domain.TrialBalance{
		StatementID:     uuid.NewString(),
		CompanyID:       companyID,
		FinancialYearID: financialYearID,
		AsOf:            asOf,
		Rows:            rows,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		IsBalanced:      totalDebit.Equal(totalCredit),
		GeneratedAt:     time.Now().UTC(),
	}

	if err := s.statementRepo.SaveTrialBalance(ctx, tb); err != nil {
		logger.Error("Failed to save trial balance snapshot", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save trial balance: %w", err)
	}

	logger.Info("Trial balance generated",
		slog.String("statement_id", tb.StatementID),
		slog.String("total_debit", totalDebit.String()),
		slog.Bool("is_balanced", tb.IsBalanced))
	return &tb, nil
}

// BalanceSheet snapshots assets against liabilities plus equity as of a date.
// The date selects the financial year whose range covers it.
func (s *statementService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fy, err := s.fyRepo.FindFinancialYearByDate(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve financial year for %s: %w", asOf.Format("2006-01-02"), err)
	}

	details, err := s.balanceRepo.ListBalanceDetails(ctx, companyID, fy.FinancialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	var assets, liabilities, equity []domain.AccountAmount
	totalAssets := decimal.Zero
	totalLiabilities := decimal.Zero
	totalEquity := decimal.Zero

	for _, d := range details {
		if !d.IsActive {
			continue
		}
		amount := domain.AccountAmount{
			AccountID: d.AccountID,
			Code:      d.Code,
			Name:      d.Name,
			NetAmount: d.CurrentBalance,
		}
		switch d.AccountType {
		case domain.Asset:
			assets = append(assets, amount)
			totalAssets = totalAssets.Add(d.CurrentBalance)
		case domain.Liability:
			liabilities = append(liabilities, amount)
			totalLiabilities = totalLiabilities.Add(d.CurrentBalance)
		case domain.Equity:
			equity = append(equity, amount)
			totalEquity = totalEquity.Add(d.CurrentBalance)
		}
	}

	sortAmounts(assets)
	sortAmounts(liabilities)
	sortAmounts(equity)

	bs := domain.BalanceSheet{
		StatementID:      uuid.NewString(),
		CompanyID:        companyID,
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		IsBalanced:       totalAssets.Equal(totalLiabilities.Add(totalEquity)),
		GeneratedAt:      time.Now().UTC(),
	}

	if err := s.statementRepo.SaveBalanceSheet(ctx, bs); err != nil {
		logger.Error("Failed to save balance sheet snapshot", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save balance sheet: %w", err)
	}

	logger.Info("Balance sheet generated",
		slog.String("statement_id", bs.StatementID),
		slog.String("total_assets", totalAssets.String()),
		slog.Bool("is_balanced", bs.IsBalanced))
	return &bs, nil
}

// ProfitLoss snapshots income against expenses over a period.
func (s *statementService) ProfitLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.ProfitLossStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !from.Before(to) {
		return nil, fmt.Errorf("%w: period start must precede end", apperrors.ErrValidation)
	}

	totals, err := s.statementRepo.SumPostedLinesBetween(ctx, companyID, from, to, []domain.AccountType{domain.Income, domain.Expense})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate posted lines: %w", err)
	}

	var income, expenses []domain.AccountAmount
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	for _, t := range totals {
		net, err := accounting.SignedBalance(t.AccountType, decimal.Zero, t.DebitTotal, t.CreditTotal)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
		}
		amount := domain.AccountAmount{
			AccountID: t.AccountID,
			Code:      t.Code,
			Name:      t.Name,
			NetAmount: net,
		}
		switch t.AccountType {
		case domain.Income:
			income = append(income, amount)
			totalIncome = totalIncome.Add(net)
		case domain.Expense:
			expenses = append(expenses, amount)
			totalExpenses = totalExpenses.Add(net)
		}
	}

	sortAmounts(income)
	sortAmounts(expenses)

	pl := domain.ProfitLossStatement{
		StatementID:   uuid.NewString(),
		CompanyID:     companyID,
		FromDate:      from,
		ToDate:        to,
		Income:        income,
		Expenses:      expenses,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetProfit:     totalIncome.Sub(totalExpenses),
		GeneratedAt:   time.Now().UTC(),
	}

	if err := s.statementRepo.SaveProfitLoss(ctx, pl); err != nil {
		logger.Error("Failed to save profit and loss snapshot", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save profit and loss statement: %w", err)
	}

	logger.Info("Profit and loss generated",
		slog.String("statement_id", pl.StatementID),
		slog.String("net_profit", pl.NetProfit.String()))
	return &pl, nil
}

// CashFlow snapshots cash/bank movement over a period, classified into
// operating, investing and financing buckets by counter-account names.
func (s *statementService) CashFlow(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !from.Before(to) {
		return nil, fmt.Errorf("%w: period start must precede end", apperrors.ErrValidation)
	}

	movements, err := s.statementRepo.FindCashMovements(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash movements: %w", err)
	}

	lines := make([]domain.CashFlowLine, 0, len(movements))
	operating := decimal.Zero
	investing := decimal.Zero
	financing := decimal.Zero

	for _, m := range movements {
		activity := classifyActivity(m.CounterAccounts)
		lines = append(lines, domain.CashFlowLine{
			EntryID:   m.EntryID,
			EntryDate: m.EntryDate,
			Narration: m.Narration,
			Activity:  activity,
			Amount:    m.Amount,
		})
		switch activity {
		case domain.ActivityInvesting:
			investing = investing.Add(m.Amount)
		case domain.ActivityFinancing:
			financing = financing.Add(m.Amount)
		default:
			operating = operating.Add(m.Amount)
		}
	}

	cf := domain.CashFlowStatement{
		StatementID: uuid.NewString(),
		CompanyID:   companyID,
		FromDate:    from,
		ToDate:      to,
		Lines:       lines,
		Operating:   operating,
		Investing:   investing,
		Financing:   financing,
		NetCashFlow: operating.Add(investing).Add(financing),
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.statementRepo.SaveCashFlow(ctx, cf); err != nil {
		logger.Error("Failed to save cash flow snapshot", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save cash flow statement: %w", err)
	}

	logger.Info("Cash flow generated",
		slog.String("statement_id", cf.StatementID),
		slog.String("net_cash_flow", cf.NetCashFlow.String()))
	return &cf, nil
}

// GetTrialBalance retrieves a stored trial balance snapshot.
func (s *statementService) GetTrialBalance(ctx context.Context, companyID, statementID string) (*domain.TrialBalance, error) {
	return s.statementRepo.GetTrialBalance(ctx, companyID, statementID)
}

// GetBalanceSheet retrieves a stored balance sheet snapshot.
func (s *statementService) GetBalanceSheet(ctx context.Context, companyID, statementID string) (*domain.BalanceSheet, error) {
	return s.statementRepo.GetBalanceSheet(ctx, companyID, statementID)
}

// GetProfitLoss retrieves a stored profit and loss snapshot.
func (s *statementService) GetProfitLoss(ctx context.Context, companyID, statementID string) (*domain.ProfitLossStatement, error) {
	return s.statementRepo.GetProfitLoss(ctx, companyID, statementID)
}

// GetCashFlow retrieves a stored cash flow snapshot.
func (s *statementService) GetCashFlow(ctx context.Context, companyID, statementID string) (*domain.CashFlowStatement, error) {
	return s.statementRepo.GetCashFlow(ctx, companyID, statementID)
}

// financingKeywords and investingKeywords drive the counter-account-name
// heuristic for cash flow classification. Everything else is operating.
var (
	financingKeywords = []string{"loan", "capital", "equity", "share", "dividend", "borrowing"}
	investingKeywords = []string{"equipment", "machinery", "vehicle", "investment", "fixed asset", "property", "furniture"}
)

func classifyActivity(counterAccounts string) domain.CashFlowActivity {
	names := strings.ToLower(counterAccounts)
	for _, kw := range financingKeywords {
		if strings.Contains(names, kw) {
			return domain.ActivityFinancing
		}
	}
	for _, kw := range investingKeywords {
		if strings.Contains(names, kw) {
			return domain.ActivityInvesting
		}
	}
	return domain.ActivityOperating
}

// sortAmounts orders report lines by account code.
func sortAmounts(amounts []domain.AccountAmount) {
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].Code < amounts[j].Code })
}
