package services

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/dto"
)

// AccountSvcFacade defines the chart-of-accounts operations exposed to
// handlers and to other services.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, updaterID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, accountID string, updaterID string) error
	GetHierarchy(ctx context.Context, companyID string) ([]*domain.AccountNode, error)
}
