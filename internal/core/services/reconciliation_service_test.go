package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/core/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconciliationRepo *MockReconciliationRepository
	mockAccountRepo        *MockAccountRepository
	mockJournalRepo        *MockJournalRepository
	service                portssvc.ReconciliationSvcFacade
	companyID              string
	actorID                string
	bankAccount            *domain.Account
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconciliationRepo = new(MockReconciliationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewReconciliationService(suite.mockReconciliationRepo, suite.mockAccountRepo, suite.mockJournalRepo)

	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.bankAccount = &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1002",
		Name:        "Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

func (suite *ReconciliationServiceTestSuite) openReconciliation() *domain.Reconciliation {
	return &domain.Reconciliation{
		ReconciliationID: uuid.NewString(),
		CompanyID:        suite.companyID,
		AccountID:        suite.bankAccount.AccountID,
		StatementDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		OpeningBalance:   decimal.NewFromInt(1000),
		BookBalance:      decimal.NewFromInt(1500),
		BankBalance:      decimal.NewFromInt(1400),
		Difference:       decimal.NewFromInt(100),
		Status:           domain.ReconciliationOpen,
	}
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_Success() {
	ctx := context.Background()
	req := dto.CreateReconciliationRequest{
		AccountID:      suite.bankAccount.AccountID,
		StatementDate:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		OpeningBalance: decimal.NewFromInt(1000),
		BookBalance:    decimal.NewFromInt(1500),
		BankBalance:    decimal.NewFromInt(1400),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(suite.bankAccount, nil).Once()
	suite.mockReconciliationRepo.On("SaveReconciliation", ctx, mock.MatchedBy(func(rec domain.Reconciliation) bool {
		return rec.Difference.Equal(decimal.NewFromInt(100)) && rec.Status == domain.ReconciliationOpen
	})).Return(nil).Once()

	rec, err := suite.service.CreateReconciliation(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.NotEmpty(rec.ReconciliationID)
	suite.True(rec.Difference.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.ReconciliationOpen, rec.Status)
	suite.Equal(suite.actorID, rec.CreatedBy)
	suite.mockReconciliationRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreateReconciliation_NonAssetRejected() {
	ctx := context.Background()
	salesAccount := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4001",
		Name:        "Sales Revenue",
		AccountType: domain.Income,
		IsActive:    true,
	}
	req := dto.CreateReconciliationRequest{
		AccountID:   salesAccount.AccountID,
		BookBalance: decimal.NewFromInt(500),
		BankBalance: decimal.NewFromInt(500),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, salesAccount.AccountID).Return(salesAccount, nil).Once()

	_, err := suite.service.CreateReconciliation(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotAssetAccount)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconciliationRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAddItems_Success() {
	ctx := context.Background()
	rec := suite.openReconciliation()
	entry := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Status:    domain.Posted,
	}
	req := dto.AddReconciliationItemsRequest{
		Items: []dto.ReconciliationItemRequest{
			{EntryID: entry.EntryID, Description: "Cheque 114", BookAmount: decimal.NewFromInt(100), BankAmount: decimal.NewFromInt(100), IsMatched: true},
			{Description: "Bank charges", BankAmount: decimal.NewFromInt(-15)},
		},
	}

	suite.mockReconciliationRepo.On("FindReconciliationByID", ctx, suite.companyID, rec.ReconciliationID).Return(rec, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockReconciliationRepo.On("SaveItems", ctx, rec.ReconciliationID, mock.MatchedBy(func(items []domain.ReconciliationItem) bool {
		return len(items) == 2 && items[0].IsMatched && items[1].EntryID == ""
	})).Return(nil).Once()

	updated, err := suite.service.AddItems(ctx, suite.companyID, rec.ReconciliationID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Items, 2)
	suite.Equal("Cheque 114", updated.Items[0].Description)
	suite.mockReconciliationRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAddItems_FinalizedRejected() {
	ctx := context.Background()
	rec := suite.openReconciliation()
	rec.Status = domain.ReconciliationFinalized
	req := dto.AddReconciliationItemsRequest{
		Items: []dto.ReconciliationItemRequest{{Description: "Late item"}},
	}

	suite.mockReconciliationRepo.On("FindReconciliationByID", ctx, suite.companyID, rec.ReconciliationID).Return(rec, nil).Once()

	_, err := suite.service.AddItems(ctx, suite.companyID, rec.ReconciliationID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReconciliationFinalized)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReconciliationRepo.AssertNotCalled(suite.T(), "SaveItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAddItems_ForeignEntryHidden() {
	ctx := context.Background()
	rec := suite.openReconciliation()
	foreignEntry := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: uuid.NewString(),
		Status:    domain.Posted,
	}
	req := dto.AddReconciliationItemsRequest{
		Items: []dto.ReconciliationItemRequest{
			{EntryID: foreignEntry.EntryID, Description: "Not ours", BookAmount: decimal.NewFromInt(50)},
		},
	}

	suite.mockReconciliationRepo.On("FindReconciliationByID", ctx, suite.companyID, rec.ReconciliationID).Return(rec, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, foreignEntry.EntryID).Return(foreignEntry, nil).Once()

	_, err := suite.service.AddItems(ctx, suite.companyID, rec.ReconciliationID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReconciliationRepo.AssertNotCalled(suite.T(), "SaveItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestFinalizeReconciliation_Success() {
	ctx := context.Background()
	rec := suite.openReconciliation()

	suite.mockReconciliationRepo.On("FindReconciliationByID", ctx, suite.companyID, rec.ReconciliationID).Return(rec, nil).Once()
	suite.mockReconciliationRepo.On("UpdateStatus", ctx, rec.ReconciliationID, domain.ReconciliationFinalized).Return(nil).Once()

	finalized, err := suite.service.FinalizeReconciliation(ctx, suite.companyID, rec.ReconciliationID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationFinalized, finalized.Status)
	suite.Equal(suite.actorID, finalized.LastUpdatedBy)
	suite.mockReconciliationRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestFinalizeReconciliation_AlreadyFinalized() {
	ctx := context.Background()
	rec := suite.openReconciliation()
	rec.Status = domain.ReconciliationFinalized

	suite.mockReconciliationRepo.On("FindReconciliationByID", ctx, suite.companyID, rec.ReconciliationID).Return(rec, nil).Once()

	_, err := suite.service.FinalizeReconciliation(ctx, suite.companyID, rec.ReconciliationID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReconciliationFinalized)
	suite.mockReconciliationRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestListReconciliations_AccountChecked() {
	ctx := context.Background()
	rec := suite.openReconciliation()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(suite.bankAccount, nil).Once()
	suite.mockReconciliationRepo.On("ListReconciliationsByAccount", ctx, suite.companyID, suite.bankAccount.AccountID).Return([]domain.Reconciliation{*rec}, nil).Once()

	recs, err := suite.service.ListReconciliations(ctx, suite.companyID, suite.bankAccount.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(recs, 1)
	suite.Equal(rec.ReconciliationID, recs[0].ReconciliationID)
}

func (suite *ReconciliationServiceTestSuite) TestListReconciliations_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListReconciliations(ctx, suite.companyID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReconciliationRepo.AssertNotCalled(suite.T(), "ListReconciliationsByAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
