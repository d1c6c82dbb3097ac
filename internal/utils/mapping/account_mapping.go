package mapping

import (
	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:   d.AccountID,
		CompanyID:   d.CompanyID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.ParentAccountID != "" {
		parent := d.ParentAccountID
		m.ParentAccountID = &parent
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:   m.AccountID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.ParentAccountID != nil {
		d.ParentAccountID = *m.ParentAccountID
	}
	return d
}
