package dto

import (
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID string             `json:"parentAccountID"`
	Description     string             `json:"description"`
}

// UpdateAccountRequest defines the expected JSON body for updating an account.
// Pointer fields distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	Name            *string             `json:"name"`
	Description     *string             `json:"description"`
	ParentAccountID *string             `json:"parentAccountID"`
	AccountType     *domain.AccountType `json:"accountType"`
	IsActive        *bool               `json:"isActive"`
}

// AccountResponse defines the JSON representation of an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	CompanyID       string             `json:"companyID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	Description     string             `json:"description,omitempty"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse maps a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		CompanyID:       a.CompanyID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		LastUpdatedAt:   a.LastUpdatedAt,
	}
}

// ToAccountResponses maps a slice of domain accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
