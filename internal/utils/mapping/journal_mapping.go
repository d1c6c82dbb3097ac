package mapping

import (
	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:        d.EntryID,
		CompanyID:      d.CompanyID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      d.EntryDate,
		Status:         models.EntryStatus(d.Status),
		ReferenceType:  d.ReferenceType,
		ReferenceID:    d.ReferenceID,
		Narration:      d.Narration,
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		ReversedByID:   d.ReversedByID,
		ReversalOfID:   d.ReversalOfID,
		ReversalReason: d.ReversalReason,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.FinancialYearID != "" {
		fyID := d.FinancialYearID
		m.FinancialYearID = &fyID
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:        m.EntryID,
		CompanyID:      m.CompanyID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      m.EntryDate,
		Status:         domain.EntryStatus(m.Status),
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Narration:      m.Narration,
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		ReversedByID:   m.ReversedByID,
		ReversalOfID:   m.ReversalOfID,
		ReversalReason: m.ReversalReason,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.FinancialYearID != nil {
		d.FinancialYearID = *m.FinancialYearID
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
