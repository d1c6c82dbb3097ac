package models

import "time"

// FinancialYear represents one row of the financial_years table. The closing
// snapshot is stored as a JSONB document alongside the flags.
type FinancialYear struct {
	FinancialYearID string     `json:"financialYearID"` // Primary Key (UUID)
	CompanyID       string     `json:"companyID"`
	YearName        string     `json:"yearName"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	IsActive        bool       `json:"isActive"`
	IsClosed        bool       `json:"isClosed"`
	ClosedAt        *time.Time `json:"closedAt"`
	ClosedBy        *string    `json:"closedBy"`
	ClosingRemarks  *string    `json:"closingRemarks"`
	ClosingSnapshot []byte     `json:"-"` // Raw JSONB, nil until closed
	AuditFields
}
