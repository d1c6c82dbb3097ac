package services_test

import (
	"context"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, status domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context, companyID string) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta) error {
	args := m.Called(ctx, entry, fy, deltas)
	return args.Error(0)
}

func (m *MockJournalRepository) ReverseEntry(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalLine, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta) error {
	args := m.Called(ctx, original, reversal, lines, fy, deltas)
	return args.Error(0)
}

// --- Mock BalanceRepository ---

type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) FindBalance(ctx context.Context, accountID, financialYearID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalanceDetails(ctx context.Context, companyID, financialYearID string) ([]domain.AccountBalanceDetail, error) {
	args := m.Called(ctx, companyID, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalanceDetail), args.Error(1)
}

func (m *MockBalanceRepository) SumPostedLines(ctx context.Context, companyID, financialYearID string) (map[string]domain.BalanceDelta, error) {
	args := m.Called(ctx, companyID, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BalanceDelta), args.Error(1)
}

func (m *MockBalanceRepository) ApplyDeltas(ctx context.Context, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta, actor string, now time.Time) error {
	args := m.Called(ctx, fy, deltas, actor, now)
	return args.Error(0)
}

func (m *MockBalanceRepository) SeedOpeningBalances(ctx context.Context, balances []domain.AccountBalance) error {
	args := m.Called(ctx, balances)
	return args.Error(0)
}

// --- Mock FinancialYearRepository ---

type MockFinancialYearRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialYearRepositoryFacade = (*MockFinancialYearRepository)(nil)

func (m *MockFinancialYearRepository) FindFinancialYearByID(ctx context.Context, companyID, financialYearID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindActiveFinancialYear(ctx context.Context, companyID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindFinancialYearByDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) CreateAndActivate(ctx context.Context, fy domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) MarkClosed(ctx context.Context, fy domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

// --- Mock StatementRepository ---

type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) SumPostedLinesBetween(ctx context.Context, companyID string, from, to time.Time, types []domain.AccountType) ([]domain.PeriodAccountTotal, error) {
	args := m.Called(ctx, companyID, from, to, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodAccountTotal), args.Error(1)
}

func (m *MockStatementRepository) FindCashMovements(ctx context.Context, companyID string, from, to time.Time) ([]domain.CashMovement, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashMovement), args.Error(1)
}

func (m *MockStatementRepository) GetTrialBalance(ctx context.Context, companyID, statementID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockStatementRepository) GetBalanceSheet(ctx context.Context, companyID, statementID string) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockStatementRepository) GetProfitLoss(ctx context.Context, companyID, statementID string) (*domain.ProfitLossStatement, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossStatement), args.Error(1)
}

func (m *MockStatementRepository) GetCashFlow(ctx context.Context, companyID, statementID string) (*domain.CashFlowStatement, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowStatement), args.Error(1)
}

func (m *MockStatementRepository) SaveTrialBalance(ctx context.Context, tb domain.TrialBalance) error {
	args := m.Called(ctx, tb)
	return args.Error(0)
}

func (m *MockStatementRepository) SaveBalanceSheet(ctx context.Context, bs domain.BalanceSheet) error {
	args := m.Called(ctx, bs)
	return args.Error(0)
}

func (m *MockStatementRepository) SaveProfitLoss(ctx context.Context, pl domain.ProfitLossStatement) error {
	args := m.Called(ctx, pl)
	return args.Error(0)
}

func (m *MockStatementRepository) SaveCashFlow(ctx context.Context, cf domain.CashFlowStatement) error {
	args := m.Called(ctx, cf)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---

type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, companyID, reconciliationID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, companyID, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliationsByAccount(ctx context.Context, companyID, accountID string) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) SaveItems(ctx context.Context, reconciliationID string, items []domain.ReconciliationItem) error {
	args := m.Called(ctx, reconciliationID, items)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus) error {
	args := m.Called(ctx, reconciliationID, status)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, updaterID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, updaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID, accountID string, updaterID string) error {
	args := m.Called(ctx, companyID, accountID, updaterID)
	return args.Error(0)
}

func (m *MockAccountService) GetHierarchy(ctx context.Context, companyID string) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}
