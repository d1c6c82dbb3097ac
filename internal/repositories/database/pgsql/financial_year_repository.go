package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/finbooks/ledger_backend/internal/models"
	"github.com/finbooks/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const financialYearColumns = `financial_year_id, company_id, year_name, start_date, end_date, is_active, is_closed,
	closed_at, closed_by, closing_remarks, closing_snapshot,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFinancialYearRepository struct {
	BaseRepository
}

// newPgxFinancialYearRepository creates a new repository for financial year data.
func newPgxFinancialYearRepository(pool *pgxpool.Pool) portsrepo.FinancialYearRepositoryFacade {
	return &PgxFinancialYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FinancialYearRepositoryFacade = (*PgxFinancialYearRepository)(nil)

func scanFinancialYear(row pgx.Row) (*models.FinancialYear, error) {
	var m models.FinancialYear
	err := row.Scan(
		&m.FinancialYearID,
		&m.CompanyID,
		&m.YearName,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.IsClosed,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.ClosingRemarks,
		&m.ClosingSnapshot,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxFinancialYearRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.FinancialYear, error) {
	m, err := scanFinancialYear(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find financial year", err)
	}
	fy, err := mapping.ToDomainFinancialYear(*m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode financial year "+m.FinancialYearID, err)
	}
	return &fy, nil
}

// FindFinancialYearByID retrieves a year scoped to a company.
func (r *PgxFinancialYearRepository) FindFinancialYearByID(ctx context.Context, companyID, financialYearID string) (*domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE company_id = $1 AND financial_year_id = $2;`
	return r.findOne(ctx, query, companyID, financialYearID)
}

// FindActiveFinancialYear retrieves the single active year of a company.
func (r *PgxFinancialYearRepository) FindActiveFinancialYear(ctx context.Context, companyID string) (*domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE company_id = $1 AND is_active = TRUE;`
	return r.findOne(ctx, query, companyID)
}

// FindFinancialYearByDate retrieves the year whose inclusive range covers the date.
func (r *PgxFinancialYearRepository) FindFinancialYearByDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2;`
	return r.findOne(ctx, query, companyID, date)
}

// ListFinancialYears retrieves all years of a company, newest first.
func (r *PgxFinancialYearRepository) ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE company_id = $1 ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query financial years for company "+companyID, err)
	}
	defer rows.Close()

	years := []domain.FinancialYear{}
	for rows.Next() {
		m, err := scanFinancialYear(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan financial year row", err)
		}
		fy, err := mapping.ToDomainFinancialYear(*m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode financial year "+m.FinancialYearID, err)
		}
		years = append(years, fy)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating financial year rows", err)
	}

	return years, nil
}

// CreateAndActivate inserts the new year and deactivates the previously
// active one in a single transaction.
func (r *PgxFinancialYearRepository) CreateAndActivate(ctx context.Context, fy domain.FinancialYear) error {
	m, err := mapping.ToModelFinancialYear(fy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode financial year "+fy.FinancialYearID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deactivateQuery := `
		UPDATE financial_years
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE company_id = $1 AND is_active = TRUE;
	`
	if _, err := tx.Exec(ctx, deactivateQuery, m.CompanyID, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to deactivate prior financial year", err)
	}

	insertQuery := `
		INSERT INTO financial_years (` + financialYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.FinancialYearID,
		m.CompanyID,
		m.YearName,
		m.StartDate,
		m.EndDate,
		m.IsActive,
		m.IsClosed,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingRemarks,
		m.ClosingSnapshot,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert financial year "+m.FinancialYearID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkClosed stores the closing snapshot and sets the closed flags.
func (r *PgxFinancialYearRepository) MarkClosed(ctx context.Context, fy domain.FinancialYear) error {
	m, err := mapping.ToModelFinancialYear(fy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode financial year "+fy.FinancialYearID, err)
	}

	query := `
		UPDATE financial_years
		SET is_active = FALSE,
		    is_closed = TRUE,
		    closed_at = $2,
		    closed_by = $3,
		    closing_remarks = $4,
		    closing_snapshot = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE financial_year_id = $1 AND is_closed = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.FinancialYearID,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingRemarks,
		m.ClosingSnapshot,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close financial year "+m.FinancialYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Already closed or missing.
		return apperrors.ErrConflict
	}
	return nil
}
