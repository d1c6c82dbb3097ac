package dto

import (
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest defines the JSON body for starting a reconciliation.
type CreateReconciliationRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	StatementDate  time.Time       `json:"statementDate" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	BookBalance    decimal.Decimal `json:"bookBalance"`
	BankBalance    decimal.Decimal `json:"bankBalance"`
}

// ReconciliationItemRequest is one matched/unmatched transaction line.
type ReconciliationItemRequest struct {
	EntryID     string          `json:"entryID"`
	Description string          `json:"description" binding:"required"`
	BookAmount  decimal.Decimal `json:"bookAmount"`
	BankAmount  decimal.Decimal `json:"bankAmount"`
	IsMatched   bool            `json:"isMatched"`
}

// AddReconciliationItemsRequest appends items to a reconciliation.
type AddReconciliationItemsRequest struct {
	Items []ReconciliationItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReconciliationItemResponse is the JSON representation of one item.
type ReconciliationItemResponse struct {
	ItemID      string          `json:"itemID"`
	EntryID     string          `json:"entryID,omitempty"`
	Description string          `json:"description"`
	BookAmount  decimal.Decimal `json:"bookAmount"`
	BankAmount  decimal.Decimal `json:"bankAmount"`
	IsMatched   bool            `json:"isMatched"`
}

// ReconciliationResponse is the JSON representation of a reconciliation record.
type ReconciliationResponse struct {
	ReconciliationID string                       `json:"reconciliationID"`
	CompanyID        string                       `json:"companyID"`
	AccountID        string                       `json:"accountID"`
	StatementDate    time.Time                    `json:"statementDate"`
	OpeningBalance   decimal.Decimal              `json:"openingBalance"`
	BookBalance      decimal.Decimal              `json:"bookBalance"`
	BankBalance      decimal.Decimal              `json:"bankBalance"`
	Difference       decimal.Decimal              `json:"difference"`
	Status           domain.ReconciliationStatus  `json:"status"`
	Items            []ReconciliationItemResponse `json:"items,omitempty"`
}

// ToReconciliationResponse maps a domain reconciliation to its response DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	resp := ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		CompanyID:        r.CompanyID,
		AccountID:        r.AccountID,
		StatementDate:    r.StatementDate,
		OpeningBalance:   r.OpeningBalance,
		BookBalance:      r.BookBalance,
		BankBalance:      r.BankBalance,
		Difference:       r.Difference,
		Status:           r.Status,
	}
	if len(r.Items) > 0 {
		resp.Items = make([]ReconciliationItemResponse, len(r.Items))
		for i, item := range r.Items {
			resp.Items[i] = ReconciliationItemResponse{
				ItemID:      item.ItemID,
				EntryID:     item.EntryID,
				Description: item.Description,
				BookAmount:  item.BookAmount,
				BankAmount:  item.BankAmount,
				IsMatched:   item.IsMatched,
			}
		}
	}
	return resp
}
