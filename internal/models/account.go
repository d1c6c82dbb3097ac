package models

// AccountType defines the fundamental accounting type of an account row.
type AccountType string

// Account represents one row of the accounts table.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary Key (UUID)
	CompanyID       string      `json:"companyID"`
	Code            string      `json:"code"` // Unique per company
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *string     `json:"parentAccountID"` // Nullable self reference
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
