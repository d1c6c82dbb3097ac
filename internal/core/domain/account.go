package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five closed account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type accumulates value on the
// debit side (assets and expenses). The remaining types are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents one node of a company's chart of accounts.
// ParentAccountID is a weak reference used only for hierarchy lookup;
// children are resolved by query, never stored as owning pointers.
type Account struct {
	AccountID       string      `json:"accountID"`
	CompanyID       string      `json:"companyID"`
	Code            string      `json:"code"` // Unique per company
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID,omitempty"` // Nullable, weak
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// AccountNode is an Account plus its resolved children, used by hierarchy reads.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
