package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/models"
)

// ToModelFinancialYear converts a domain FinancialYear to a model
// FinancialYear, serializing the closing snapshot to JSONB.
func ToModelFinancialYear(d domain.FinancialYear) (models.FinancialYear, error) {
	m := models.FinancialYear{
		FinancialYearID: d.FinancialYearID,
		CompanyID:       d.CompanyID,
		YearName:        d.YearName,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		IsActive:        d.IsActive,
		IsClosed:        d.IsClosed,
		ClosedAt:        d.ClosedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.ClosedBy != "" {
		closedBy := d.ClosedBy
		m.ClosedBy = &closedBy
	}
	if d.ClosingRemarks != "" {
		remarks := d.ClosingRemarks
		m.ClosingRemarks = &remarks
	}
	if d.ClosingSnapshot != nil {
		raw, err := json.Marshal(d.ClosingSnapshot)
		if err != nil {
			return models.FinancialYear{}, fmt.Errorf("failed to marshal closing snapshot: %w", err)
		}
		m.ClosingSnapshot = raw
	}
	return m, nil
}

// ToDomainFinancialYear converts a model FinancialYear to a domain FinancialYear
func ToDomainFinancialYear(m models.FinancialYear) (domain.FinancialYear, error) {
	d := domain.FinancialYear{
		FinancialYearID: m.FinancialYearID,
		CompanyID:       m.CompanyID,
		YearName:        m.YearName,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		IsActive:        m.IsActive,
		IsClosed:        m.IsClosed,
		ClosedAt:        m.ClosedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.ClosedBy != nil {
		d.ClosedBy = *m.ClosedBy
	}
	if m.ClosingRemarks != nil {
		d.ClosingRemarks = *m.ClosingRemarks
	}
	if len(m.ClosingSnapshot) > 0 {
		var snapshot domain.ClosingSnapshot
		if err := json.Unmarshal(m.ClosingSnapshot, &snapshot); err != nil {
			return domain.FinancialYear{}, fmt.Errorf("failed to unmarshal closing snapshot: %w", err)
		}
		d.ClosingSnapshot = &snapshot
	}
	return d, nil
}
