package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo *MockBalanceRepository
	mockAccountRepo *MockAccountRepository
	mockFYRepo      *MockFinancialYearRepository
	service         portssvc.BalanceSvcFacade
	companyID       string
	actorID         string
	cashAccount     domain.Account
	salesAccount    domain.Account
	openYear        domain.FinancialYear
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockFYRepo = new(MockFinancialYearRepository)
	suite.service = services.NewBalanceService(suite.mockBalanceRepo, suite.mockAccountRepo, suite.mockFYRepo)

	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4001",
		Name:        "Sales Revenue",
		AccountType: domain.Income,
		IsActive:    true,
	}
	suite.openYear = domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		CompanyID:       suite.companyID,
		YearName:        "FY-2025",
		StartDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func (suite *BalanceServiceTestSuite) TestApply_Success() {
	ctx := context.Background()

	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, suite.openYear.FinancialYearID).Return(&suite.openYear, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockBalanceRepo.On("ApplyDeltas", ctx, suite.openYear,
		map[string]domain.BalanceDelta{
			suite.cashAccount.AccountID: {Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		},
		suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.Apply(ctx, suite.companyID, suite.cashAccount.AccountID, suite.openYear.FinancialYearID, decimal.NewFromInt(100), decimal.Zero, suite.actorID)

	suite.Require().NoError(err)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestApply_NegativeDelta() {
	ctx := context.Background()

	err := suite.service.Apply(ctx, suite.companyID, suite.cashAccount.AccountID, suite.openYear.FinancialYearID, decimal.NewFromInt(-5), decimal.Zero, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "ApplyDeltas", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestApply_ClosedYear() {
	ctx := context.Background()
	closed := suite.openYear
	closed.IsClosed = true

	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, closed.FinancialYearID).Return(&closed, nil).Once()

	err := suite.service.Apply(ctx, suite.companyID, suite.cashAccount.AccountID, closed.FinancialYearID, decimal.NewFromInt(100), decimal.Zero, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "ApplyDeltas", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetBalanceDetail_UntouchedPairReadsZero() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, suite.openYear.FinancialYearID).Return(&suite.openYear, nil).Once()
	suite.mockBalanceRepo.On("FindBalance", ctx, suite.cashAccount.AccountID, suite.openYear.FinancialYearID).Return(nil, apperrors.ErrNotFound).Once()

	detail, err := suite.service.GetBalanceDetail(ctx, suite.companyID, suite.cashAccount.AccountID, suite.openYear.FinancialYearID)

	suite.Require().NoError(err)
	suite.True(detail.OpeningBalance.IsZero())
	suite.True(detail.CurrentBalance.IsZero())
	suite.Equal(suite.cashAccount.AccountID, detail.AccountID)
}

func (suite *BalanceServiceTestSuite) TestGetBalance_ReturnsCurrent() {
	ctx := context.Background()
	stored := &domain.AccountBalance{
		CompanyID:       suite.companyID,
		AccountID:       suite.cashAccount.AccountID,
		FinancialYearID: suite.openYear.FinancialYearID,
		OpeningBalance:  decimal.NewFromInt(50),
		DebitTotal:      decimal.NewFromInt(100),
		CreditTotal:     decimal.NewFromInt(30),
		CurrentBalance:  decimal.NewFromInt(120),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, suite.openYear.FinancialYearID).Return(&suite.openYear, nil).Once()
	suite.mockBalanceRepo.On("FindBalance", ctx, suite.cashAccount.AccountID, suite.openYear.FinancialYearID).Return(stored, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.companyID, suite.cashAccount.AccountID, suite.openYear.FinancialYearID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(120)))
}

func (suite *BalanceServiceTestSuite) storedDetail(account domain.Account, opening, debit, credit, current int64) domain.AccountBalanceDetail {
	return domain.AccountBalanceDetail{
		AccountBalance: domain.AccountBalance{
			CompanyID:       suite.companyID,
			AccountID:       account.AccountID,
			FinancialYearID: suite.openYear.FinancialYearID,
			OpeningBalance:  decimal.NewFromInt(opening),
			DebitTotal:      decimal.NewFromInt(debit),
			CreditTotal:     decimal.NewFromInt(credit),
			CurrentBalance:  decimal.NewFromInt(current),
		},
		Code:        account.Code,
		Name:        account.Name,
		AccountType: account.AccountType,
		IsActive:    account.IsActive,
	}
}

func (suite *BalanceServiceTestSuite) TestRecomputeAll_Agreement() {
	ctx := context.Background()
	fyID := suite.openYear.FinancialYearID

	replayed := map[string]domain.BalanceDelta{
		suite.cashAccount.AccountID:  {Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		suite.salesAccount.AccountID: {Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}
	stored := []domain.AccountBalanceDetail{
		suite.storedDetail(suite.cashAccount, 0, 500, 0, 500),
		suite.storedDetail(suite.salesAccount, 0, 0, 500, 500),
	}

	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, fyID).Return(&suite.openYear, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLines", ctx, suite.companyID, fyID).Return(replayed, nil).Once()
	suite.mockBalanceRepo.On("ListBalanceDetails", ctx, suite.companyID, fyID).Return(stored, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.companyID).Return([]domain.Account{suite.cashAccount, suite.salesAccount}, nil).Once()

	balances, err := suite.service.RecomputeAll(ctx, suite.companyID, fyID)

	suite.Require().NoError(err)
	suite.Len(balances, 2)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecomputeAll_DriftDetected() {
	ctx := context.Background()
	fyID := suite.openYear.FinancialYearID

	replayed := map[string]domain.BalanceDelta{
		suite.cashAccount.AccountID:  {Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		suite.salesAccount.AccountID: {Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}
	// Stored cash row is stale: it missed a posting.
	stored := []domain.AccountBalanceDetail{
		suite.storedDetail(suite.cashAccount, 0, 400, 0, 400),
		suite.storedDetail(suite.salesAccount, 0, 0, 500, 500),
	}

	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, fyID).Return(&suite.openYear, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLines", ctx, suite.companyID, fyID).Return(replayed, nil).Once()
	suite.mockBalanceRepo.On("ListBalanceDetails", ctx, suite.companyID, fyID).Return(stored, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.companyID).Return([]domain.Account{suite.cashAccount, suite.salesAccount}, nil).Once()

	balances, err := suite.service.RecomputeAll(ctx, suite.companyID, fyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.Contains(err.Error(), suite.cashAccount.AccountID)
	// Replayed balances are still returned so callers can inspect the divergence.
	suite.Len(balances, 2)
}

func (suite *BalanceServiceTestSuite) TestRecomputeAll_OpeningBalanceOnlyRow() {
	ctx := context.Background()
	fyID := suite.openYear.FinancialYearID

	// A carried-forward row with no postings yet must not count as drift.
	stored := []domain.AccountBalanceDetail{
		suite.storedDetail(suite.cashAccount, 250, 0, 0, 250),
	}

	suite.mockFYRepo.On("FindFinancialYearByID", ctx, suite.companyID, fyID).Return(&suite.openYear, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLines", ctx, suite.companyID, fyID).Return(map[string]domain.BalanceDelta{}, nil).Once()
	suite.mockBalanceRepo.On("ListBalanceDetails", ctx, suite.companyID, fyID).Return(stored, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.companyID).Return([]domain.Account{suite.cashAccount}, nil).Once()

	balances, err := suite.service.RecomputeAll(ctx, suite.companyID, fyID)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 1)
	suite.True(balances[0].CurrentBalance.Equal(decimal.NewFromInt(250)))
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
