package mapping

import (
	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/models"
)

// ToModelAccountBalance converts a domain AccountBalance to a model AccountBalance
func ToModelAccountBalance(d domain.AccountBalance) models.AccountBalance {
	return models.AccountBalance{
		CompanyID:       d.CompanyID,
		AccountID:       d.AccountID,
		FinancialYearID: d.FinancialYearID,
		OpeningBalance:  d.OpeningBalance,
		DebitTotal:      d.DebitTotal,
		CreditTotal:     d.CreditTotal,
		CurrentBalance:  d.CurrentBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountBalance converts a model AccountBalance to a domain AccountBalance
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		CompanyID:       m.CompanyID,
		AccountID:       m.AccountID,
		FinancialYearID: m.FinancialYearID,
		OpeningBalance:  m.OpeningBalance,
		DebitTotal:      m.DebitTotal,
		CreditTotal:     m.CreditTotal,
		CurrentBalance:  m.CurrentBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
