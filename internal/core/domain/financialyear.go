package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialYear is the accounting period that scopes balance accumulation.
// Exactly one year is active per company at a time; a closed year is terminal
// for postings.
type FinancialYear struct {
	FinancialYearID string     `json:"financialYearID"`
	CompanyID       string     `json:"companyID"`
	YearName        string     `json:"yearName"` // e.g. "FY-2024"
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	IsActive        bool       `json:"isActive"`
	IsClosed        bool       `json:"isClosed"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
	ClosedBy        string     `json:"closedBy,omitempty"`
	ClosingRemarks  string     `json:"closingRemarks,omitempty"`
	AuditFields
	// ClosingSnapshot is written once when the year is closed. It is this
	// year's closing state, distinct from the opening balances carry-forward
	// seeds into the next year.
	ClosingSnapshot *ClosingSnapshot `json:"closingSnapshot,omitempty"`
}

// ClosingSnapshot captures every account's closing position at year close.
type ClosingSnapshot struct {
	SnapshotAt time.Time               `json:"snapshotAt"`
	Accounts   []ClosingAccountBalance `json:"accounts"`
}

// ClosingAccountBalance is one account's closing state inside a snapshot.
type ClosingAccountBalance struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // Signed per normal-balance convention
}
