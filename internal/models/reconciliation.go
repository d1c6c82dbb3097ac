package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates the lifecycle state of a reconciliation row.
type ReconciliationStatus string

// Reconciliation represents one row of the reconciliations table.
type Reconciliation struct {
	ReconciliationID string               `json:"reconciliationID"` // Primary Key (UUID)
	CompanyID        string               `json:"companyID"`
	AccountID        string               `json:"accountID"`
	StatementDate    time.Time            `json:"statementDate"`
	OpeningBalance   decimal.Decimal      `json:"openingBalance"`
	BookBalance      decimal.Decimal      `json:"bookBalance"`
	BankBalance      decimal.Decimal      `json:"bankBalance"`
	Difference       decimal.Decimal      `json:"difference"`
	Status           ReconciliationStatus `json:"status"`
	AuditFields
}

// ReconciliationItem represents one row of the reconciliation_items table.
type ReconciliationItem struct {
	ItemID           string          `json:"itemID"` // Primary Key (UUID)
	ReconciliationID string          `json:"reconciliationID"`
	EntryID          *string         `json:"entryID"` // Nullable ledger entry link
	Description      string          `json:"description"`
	BookAmount       decimal.Decimal `json:"bookAmount"`
	BankAmount       decimal.Decimal `json:"bankAmount"`
	IsMatched        bool            `json:"isMatched"`
	AuditFields
}
