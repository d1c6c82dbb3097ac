package dto

import (
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// CreateFinancialYearRequest defines the JSON body for opening a new year.
type CreateFinancialYearRequest struct {
	YearName  string    `json:"yearName" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CloseFinancialYearRequest defines the JSON body for closing a year.
type CloseFinancialYearRequest struct {
	Remarks string `json:"remarks"`
}

// CarryForwardRequest seeds a target year's opening balances from a closed
// year's closing snapshot.
type CarryForwardRequest struct {
	ToFinancialYearID string `json:"toFinancialYearID" binding:"required"`
}

// FinancialYearResponse is the JSON representation of a financial year.
type FinancialYearResponse struct {
	FinancialYearID string     `json:"financialYearID"`
	CompanyID       string     `json:"companyID"`
	YearName        string     `json:"yearName"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	IsActive        bool       `json:"isActive"`
	IsClosed        bool       `json:"isClosed"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
	ClosedBy        string     `json:"closedBy,omitempty"`
	ClosingRemarks  string     `json:"closingRemarks,omitempty"`
}

// ToFinancialYearResponse maps a domain financial year to its response DTO.
func ToFinancialYearResponse(fy *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		FinancialYearID: fy.FinancialYearID,
		CompanyID:       fy.CompanyID,
		YearName:        fy.YearName,
		StartDate:       fy.StartDate,
		EndDate:         fy.EndDate,
		IsActive:        fy.IsActive,
		IsClosed:        fy.IsClosed,
		ClosedAt:        fy.ClosedAt,
		ClosedBy:        fy.ClosedBy,
		ClosingRemarks:  fy.ClosingRemarks,
	}
}
