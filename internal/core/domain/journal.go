package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED" // Still posted, annotated with its reversal
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Entries are created as drafts with no lines; totals are
// recomputed whenever lines change and the debit=credit invariant is
// enforced at post time.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	CompanyID        string          `json:"companyID"`
	EntryNumber      string          `json:"entryNumber"` // Unique per company, e.g. JE-000042
	EntryDate        time.Time       `json:"entryDate"`
	Status           EntryStatus     `json:"status"`
	ReferenceType    string          `json:"referenceType,omitempty"` // Collaborator document type
	ReferenceID      string          `json:"referenceID,omitempty"`
	Narration        string          `json:"narration"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	ReversedByID     *string         `json:"reversedByID,omitempty"`     // Set on the original when reversed
	ReversalOfID     *string         `json:"reversalOfID,omitempty"`     // Set on the mirroring entry
	ReversalReason   string          `json:"reversalReason,omitempty"`
	FinancialYearID  string          `json:"financialYearID,omitempty"` // Resolved at post time
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalLine represents a single line within a journal entry, affecting one
// account. Exactly one of DebitAmount/CreditAmount is positive.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	AuditFields
}
