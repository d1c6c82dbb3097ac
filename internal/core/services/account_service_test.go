package services_test

import (
	"context"
	"testing"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/core/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	companyID       string
	actorID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1001", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(suite.actorID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1001",
		AccountType: domain.Asset,
	}
	req := dto.CreateAccountRequest{Code: "1001", Name: "Cash", AccountType: domain.Asset}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1001").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1001", Name: "Cash", AccountType: "CONTRA"}

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1002",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: parentID,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1002").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrParentNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeLockedByPostings() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "5001",
		Name:        "Rent",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	newType := domain.Asset

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasPostedLines", ctx, account.AccountID).Return(true, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTypeImmutable)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeBeforePostings() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "5001",
		Name:        "Rent",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	newType := domain.Liability

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasPostedLines", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Liability, updated.AccountType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParentRejected() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{ParentAccountID: &account.AccountID}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_KeepsHistory() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return !a.IsActive
	})).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, account.AccountID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetHierarchy_BuildsTree() {
	ctx := context.Background()
	root := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1000",
		Name:        "Current Assets",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	childB := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Code:            "1002",
		Name:            "Bank",
		AccountType:     domain.Asset,
		ParentAccountID: root.AccountID,
		IsActive:        true,
	}
	childA := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Code:            "1001",
		Name:            "Cash",
		AccountType:     domain.Asset,
		ParentAccountID: root.AccountID,
		IsActive:        true,
	}
	orphan := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Code:            "2001",
		Name:            "Loans",
		AccountType:     domain.Liability,
		ParentAccountID: uuid.NewString(), // Dangling weak reference
		IsActive:        true,
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.companyID).Return([]domain.Account{root, childB, childA, orphan}, nil).Once()

	roots, err := suite.service.GetHierarchy(ctx, suite.companyID)

	suite.Require().NoError(err)
	suite.Require().Len(roots, 2)
	suite.Equal("1000", roots[0].Code)
	suite.Equal("2001", roots[1].Code)
	suite.Require().Len(roots[0].Children, 2)
	// Siblings ordered by code.
	suite.Equal("1001", roots[0].Children[0].Code)
	suite.Equal("1002", roots[0].Children[1].Code)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
