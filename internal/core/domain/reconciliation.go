package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates whether a reconciliation record is still
// collecting items.
type ReconciliationStatus string

const (
	ReconciliationOpen      ReconciliationStatus = "OPEN"
	ReconciliationFinalized ReconciliationStatus = "FINALIZED"
)

// Reconciliation explains the variance between a ledger account's book
// balance and an externally reported bank balance. It is read-only with
// respect to the ledger; it never mutates balances.
type Reconciliation struct {
	ReconciliationID string               `json:"reconciliationID"`
	CompanyID        string               `json:"companyID"`
	AccountID        string               `json:"accountID"`
	StatementDate    time.Time            `json:"statementDate"`
	OpeningBalance   decimal.Decimal      `json:"openingBalance"`
	BookBalance      decimal.Decimal      `json:"bookBalance"`
	BankBalance      decimal.Decimal      `json:"bankBalance"`
	Difference       decimal.Decimal      `json:"difference"` // book - bank
	Status           ReconciliationStatus `json:"status"`
	AuditFields
	Items []ReconciliationItem `json:"items,omitempty"`
}

// ReconciliationItem records one matched or unmatched transaction.
type ReconciliationItem struct {
	ItemID           string          `json:"itemID"`
	ReconciliationID string          `json:"reconciliationID"`
	EntryID          string          `json:"entryID,omitempty"` // Ledger entry, when known
	Description      string          `json:"description"`
	BookAmount       decimal.Decimal `json:"bookAmount"`
	BankAmount       decimal.Decimal `json:"bankAmount"`
	IsMatched        bool            `json:"isMatched"`
	AuditFields
}
