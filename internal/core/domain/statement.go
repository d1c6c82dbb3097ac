package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementKind identifies one of the four derived financial statements.
type StatementKind string

const (
	StatementTrialBalance StatementKind = "TRIAL_BALANCE"
	StatementBalanceSheet StatementKind = "BALANCE_SHEET"
	StatementProfitLoss   StatementKind = "PROFIT_LOSS"
	StatementCashFlow     StatementKind = "CASH_FLOW"
)

// TrialBalanceRow splits one account's signed balance into nonnegative
// debit/credit columns.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is an immutable point-in-time snapshot of every active
// account's debit/credit position.
type TrialBalance struct {
	StatementID     string            `json:"statementID"`
	CompanyID       string            `json:"companyID"`
	FinancialYearID string            `json:"financialYearID"`
	AsOf            time.Time         `json:"asOf"`
	Rows            []TrialBalanceRow `json:"rows"`
	TotalDebit      decimal.Decimal   `json:"totalDebit"`
	TotalCredit     decimal.Decimal   `json:"totalCredit"`
	IsBalanced      bool              `json:"isBalanced"`
	GeneratedAt     time.Time         `json:"generatedAt"`
}

// AccountAmount pairs an account with its net signed amount inside a report.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// BalanceSheet is an immutable snapshot of the balance-sheet identity.
type BalanceSheet struct {
	StatementID      string          `json:"statementID"`
	CompanyID        string          `json:"companyID"`
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// ProfitLossStatement is an immutable snapshot of income vs expenses over a period.
type ProfitLossStatement struct {
	StatementID   string          `json:"statementID"`
	CompanyID     string          `json:"companyID"`
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	Income        []AccountAmount `json:"income"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// PeriodAccountTotal aggregates one account's posted debits and credits over
// a date range. Input to period-scoped statements (P&L, cash flow).
type PeriodAccountTotal struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// CashFlowActivity is a cash-flow classification bucket.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// CashMovement is one journal entry's net effect on cash/bank accounts,
// together with the counter-account names used for classification.
type CashMovement struct {
	EntryID         string          `json:"entryID"`
	EntryDate       time.Time       `json:"entryDate"`
	Narration       string          `json:"narration"`
	Amount          decimal.Decimal `json:"amount"` // Signed: positive = cash inflow
	CounterAccounts string          `json:"counterAccounts"`
}

// CashFlowLine is a classified movement inside a cash flow statement.
type CashFlowLine struct {
	EntryID   string           `json:"entryID"`
	EntryDate time.Time        `json:"entryDate"`
	Narration string           `json:"narration"`
	Activity  CashFlowActivity `json:"activity"`
	Amount    decimal.Decimal  `json:"amount"`
}

// CashFlowStatement is an immutable snapshot of cash movement over a period.
type CashFlowStatement struct {
	StatementID string          `json:"statementID"`
	CompanyID   string          `json:"companyID"`
	FromDate    time.Time       `json:"fromDate"`
	ToDate      time.Time       `json:"toDate"`
	Lines       []CashFlowLine  `json:"lines"`
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
