package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
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
	ErrDuplicateCode      = errors.New("account code already exists for company")
	ErrParentNotFound     = errors.New("parent account not found")
	ErrTypeImmutable      = errors.New("account type cannot change once postings exist")
	ErrAccountHasPostings = errors.New("account has posted lines")
)

// accountService owns the chart of accounts: definitions and hierarchy.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account. The code must be unique within the
// company, and a parent reference must resolve to an account of the same company.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s (%w)", ErrDuplicateCode, req.Code, apperrors.ErrDuplicate)
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, companyID, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s (%w)", ErrParentNotFound, req.ParentAccountID, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to resolve parent account: %w", err)
		}
		if parent.CompanyID != companyID {
			return nil, fmt.Errorf("%w: %s (%w)", ErrParentNotFound, req.ParentAccountID, apperrors.ErrNotFound)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code), slog.String("company_id", companyID))
	return &account, nil
}

// GetAccountByID retrieves a specific account scoped to a company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the full chart of accounts for a company.
func (s *accountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates mutable account fields. The account type is locked
// once the account has posted lines.
func (s *accountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, updaterID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentAccountID != nil {
		if *req.ParentAccountID != "" {
			if *req.ParentAccountID == accountID {
				return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
			}
			if _, err := s.accountRepo.FindAccountByID(ctx, companyID, *req.ParentAccountID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: %s (%w)", ErrParentNotFound, *req.ParentAccountID, apperrors.ErrNotFound)
				}
				return nil, fmt.Errorf("failed to resolve parent account: %w", err)
			}
		}
		account.ParentAccountID = *req.ParentAccountID
		updated = true
	}
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		hasPostings, err := s.accountRepo.HasPostedLines(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check postings for account %s: %w", accountID, err)
		}
		if hasPostings {
			return nil, fmt.Errorf("%w (%w)", ErrTypeImmutable, apperrors.ErrConflict)
		}
		account.AccountType = *req.AccountType
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive. Inactive accounts reject new
// journal lines but keep their history.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID string, updaterID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, companyID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, updaterID)
	return err
}

// GetHierarchy builds the account tree by following weak parent references.
// Accounts whose parent is missing or inactive-orphaned surface as roots;
// children hold no owning back-pointers.
func (s *accountService) GetHierarchy(ctx context.Context, companyID string) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for hierarchy: %w", err)
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{Account: accounts[i]}
	}

	var roots []*domain.AccountNode
	for _, node := range nodes {
		if node.ParentAccountID != "" {
			if parent, ok := nodes[node.ParentAccountID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	return roots, nil
}

// sortNodes orders sibling nodes by account code, recursively.
func sortNodes(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
