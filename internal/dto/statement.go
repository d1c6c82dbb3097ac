package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementPeriodParams holds query parameters for period-scoped statements.
type StatementPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// StatementAsOfParams holds query parameters for point-in-time statements.
type StatementAsOfParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}

// BalanceResponse exposes one account's signed balance for a financial year.
type BalanceResponse struct {
	AccountID       string          `json:"accountID"`
	FinancialYearID string          `json:"financialYearID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	DebitTotal      decimal.Decimal `json:"debitTotal"`
	CreditTotal     decimal.Decimal `json:"creditTotal"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
}
