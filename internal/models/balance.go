package models

import "github.com/shopspring/decimal"

// AccountBalance represents one row of the account_balances table, keyed by
// (account_id, financial_year_id).
type AccountBalance struct {
	CompanyID       string          `json:"companyID"`
	AccountID       string          `json:"accountID"`
	FinancialYearID string          `json:"financialYearID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	DebitTotal      decimal.Decimal `json:"debitTotal"`
	CreditTotal     decimal.Decimal `json:"creditTotal"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	AuditFields
}
