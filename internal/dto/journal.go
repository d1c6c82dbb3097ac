package dto

import (
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a journal entry submission.
// Exactly one of debitAmount/creditAmount must be positive.
type JournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount" binding:"dnonneg"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"dnonneg"`
	Description  string          `json:"description"`
}

// CreateEntryRequest creates an empty draft entry.
type CreateEntryRequest struct {
	EntryDate     time.Time `json:"entryDate" binding:"required"`
	Narration     string    `json:"narration" binding:"required"`
	ReferenceType string    `json:"referenceType"`
	ReferenceID   string    `json:"referenceID"`
}

// AddLinesRequest replaces the line set of a draft entry.
type AddLinesRequest struct {
	Lines []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SubmitJournalRequest is the collaborator contract: create a draft entry and
// its lines in one call.
type SubmitJournalRequest struct {
	EntryDate     time.Time            `json:"entryDate" binding:"required"`
	Narration     string               `json:"narration" binding:"required"`
	ReferenceType string               `json:"referenceType"`
	ReferenceID   string               `json:"referenceID"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest reverses a posted entry.
type ReverseEntryRequest struct {
	Date   time.Time `json:"date" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
}

// ListEntriesParams holds query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status"`
}

// JournalLineResponse is the JSON representation of a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description,omitempty"`
}

// JournalEntryResponse is the JSON representation of a journal entry.
type JournalEntryResponse struct {
	EntryID        string                `json:"entryID"`
	CompanyID      string                `json:"companyID"`
	EntryNumber    string                `json:"entryNumber"`
	EntryDate      time.Time             `json:"entryDate"`
	Status         domain.EntryStatus    `json:"status"`
	ReferenceType  string                `json:"referenceType,omitempty"`
	ReferenceID    string                `json:"referenceID,omitempty"`
	Narration      string                `json:"narration"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	ReversedByID   *string               `json:"reversedByID,omitempty"`
	ReversalOfID   *string               `json:"reversalOfID,omitempty"`
	ReversalReason string                `json:"reversalReason,omitempty"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// SubmitJournalResponse is the collaborator contract response.
type SubmitJournalResponse struct {
	EntryID string             `json:"entryID"`
	Status  domain.EntryStatus `json:"status"`
}

// ToJournalLineResponse maps a domain line to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
		Description:  l.Description,
	}
}

// ToJournalEntryResponse maps a domain entry (with optional lines) to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:        e.EntryID,
		CompanyID:      e.CompanyID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      e.EntryDate,
		Status:         e.Status,
		ReferenceType:  e.ReferenceType,
		ReferenceID:    e.ReferenceID,
		Narration:      e.Narration,
		TotalDebit:     e.TotalDebit,
		TotalCredit:    e.TotalCredit,
		ReversedByID:   e.ReversedByID,
		ReversalOfID:   e.ReversalOfID,
		ReversalReason: e.ReversalReason,
		CreatedAt:      e.CreatedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}
