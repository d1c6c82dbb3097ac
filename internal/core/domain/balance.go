package domain

import "github.com/shopspring/decimal"

// AccountBalance accumulates posted debits and credits for one account within
// one financial year. Rows are created lazily on the first posting touching
// the account/year pair. OpeningBalance is nonzero only when seeded by
// carry-forward from the prior year's closing snapshot.
type AccountBalance struct {
	CompanyID       string          `json:"companyID"`
	AccountID       string          `json:"accountID"`
	FinancialYearID string          `json:"financialYearID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"` // Signed, in the account's normal direction
	DebitTotal      decimal.Decimal `json:"debitTotal"`
	CreditTotal     decimal.Decimal `json:"creditTotal"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"` // Signed per normal-balance convention
	AuditFields
}

// BalanceDelta is the debit/credit increment one posting contributes to an
// account's balance row.
type BalanceDelta struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add returns the element-wise sum of two deltas.
func (d BalanceDelta) Add(other BalanceDelta) BalanceDelta {
	return BalanceDelta{
		Debit:  d.Debit.Add(other.Debit),
		Credit: d.Credit.Add(other.Credit),
	}
}

// AccountBalanceDetail joins a balance row with its account's descriptive
// fields for statement generation.
type AccountBalanceDetail struct {
	AccountBalance
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsActive    bool        `json:"isActive"`
}
