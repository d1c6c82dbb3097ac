package mapping

import (
	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/models"
)

// ToModelReconciliation converts a domain Reconciliation to a model Reconciliation
func ToModelReconciliation(d domain.Reconciliation) models.Reconciliation {
	return models.Reconciliation{
		ReconciliationID: d.ReconciliationID,
		CompanyID:        d.CompanyID,
		AccountID:        d.AccountID,
		StatementDate:    d.StatementDate,
		OpeningBalance:   d.OpeningBalance,
		BookBalance:      d.BookBalance,
		BankBalance:      d.BankBalance,
		Difference:       d.Difference,
		Status:           models.ReconciliationStatus(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a model Reconciliation to a domain Reconciliation
func ToDomainReconciliation(m models.Reconciliation) domain.Reconciliation {
	return domain.Reconciliation{
		ReconciliationID: m.ReconciliationID,
		CompanyID:        m.CompanyID,
		AccountID:        m.AccountID,
		StatementDate:    m.StatementDate,
		OpeningBalance:   m.OpeningBalance,
		BookBalance:      m.BookBalance,
		BankBalance:      m.BankBalance,
		Difference:       m.Difference,
		Status:           domain.ReconciliationStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReconciliationItem converts a domain ReconciliationItem to a model ReconciliationItem
func ToModelReconciliationItem(d domain.ReconciliationItem) models.ReconciliationItem {
	m := models.ReconciliationItem{
		ItemID:           d.ItemID,
		ReconciliationID: d.ReconciliationID,
		Description:      d.Description,
		BookAmount:       d.BookAmount,
		BankAmount:       d.BankAmount,
		IsMatched:        d.IsMatched,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.EntryID != "" {
		entryID := d.EntryID
		m.EntryID = &entryID
	}
	return m
}

// ToDomainReconciliationItem converts a model ReconciliationItem to a domain ReconciliationItem
func ToDomainReconciliationItem(m models.ReconciliationItem) domain.ReconciliationItem {
	d := domain.ReconciliationItem{
		ItemID:           m.ItemID,
		ReconciliationID: m.ReconciliationID,
		Description:      m.Description,
		BookAmount:       m.BookAmount,
		BankAmount:       m.BankAmount,
		IsMatched:        m.IsMatched,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.EntryID != nil {
		d.EntryID = *m.EntryID
	}
	return d
}
