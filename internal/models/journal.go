package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents one row of the journal_entries table.
type JournalEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	EntryNumber     string          `json:"entryNumber"` // Unique per company
	EntryDate       time.Time       `json:"entryDate"`
	Status          EntryStatus     `json:"status"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"`
	Narration       string          `json:"narration"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	ReversedByID    *string         `json:"reversedByID"` // Nullable reversal links
	ReversalOfID    *string         `json:"reversalOfID"`
	ReversalReason  string          `json:"reversalReason"`
	FinancialYearID *string         `json:"financialYearID"` // Null until posted
	AuditFields
}

// JournalLine represents one row of the journal_lines table.
type JournalLine struct {
	LineID       string          `json:"lineID"` // Primary Key (UUID)
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	AuditFields
}
