package pgsql

import (
	"context"
	"errors"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/finbooks/ledger_backend/internal/models"
	"github.com/finbooks/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconciliationColumns = `reconciliation_id, company_id, account_id, statement_date, opening_balance,
	book_balance, bank_balance, difference, status,
	created_at, created_by, last_updated_at, last_updated_by`

const reconciliationItemColumns = `item_id, reconciliation_id, entry_id, description, book_amount, bank_amount, is_matched,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func scanReconciliation(row pgx.Row) (*models.Reconciliation, error) {
	var m models.Reconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.CompanyID,
		&m.AccountID,
		&m.StatementDate,
		&m.OpeningBalance,
		&m.BookBalance,
		&m.BankBalance,
		&m.Difference,
		&m.Status,
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

func (r *PgxReconciliationRepository) findItems(ctx context.Context, reconciliationID string) ([]domain.ReconciliationItem, error) {
	query := `SELECT ` + reconciliationItemColumns + ` FROM reconciliation_items WHERE reconciliation_id = $1 ORDER BY created_at, item_id;`

	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for reconciliation "+reconciliationID, err)
	}
	defer rows.Close()

	items := []domain.ReconciliationItem{}
	for rows.Next() {
		var m models.ReconciliationItem
		if err := rows.Scan(
			&m.ItemID,
			&m.ReconciliationID,
			&m.EntryID,
			&m.Description,
			&m.BookAmount,
			&m.BankAmount,
			&m.IsMatched,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation item row", err)
		}
		items = append(items, mapping.ToDomainReconciliationItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reconciliation item rows", err)
	}

	return items, nil
}

// FindReconciliationByID retrieves a reconciliation with its items.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, companyID, reconciliationID string) (*domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE company_id = $1 AND reconciliation_id = $2;`

	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, companyID, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation "+reconciliationID, err)
	}

	rec := mapping.ToDomainReconciliation(*m)
	items, err := r.findItems(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}

// ListReconciliationsByAccount retrieves reconciliations for an account,
// newest statement date first, without items.
func (r *PgxReconciliationRepository) ListReconciliationsByAccount(ctx context.Context, companyID, accountID string) ([]domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE company_id = $1 AND account_id = $2 ORDER BY statement_date DESC;`

	rows, err := r.Pool.Query(ctx, query, companyID, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reconciliations for account "+accountID, err)
	}
	defer rows.Close()

	recs := []domain.Reconciliation{}
	for rows.Next() {
		m, err := scanReconciliation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation row", err)
		}
		recs = append(recs, mapping.ToDomainReconciliation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reconciliation rows", err)
	}

	return recs, nil
}

// SaveReconciliation persists a new reconciliation header.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	query := `
		INSERT INTO reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.CompanyID,
		m.AccountID,
		m.StatementDate,
		m.OpeningBalance,
		m.BookBalance,
		m.BankBalance,
		m.Difference,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation "+m.ReconciliationID, err)
	}
	return nil
}

// SaveItems appends items to an existing reconciliation.
func (r *PgxReconciliationRepository) SaveItems(ctx context.Context, reconciliationID string, items []domain.ReconciliationItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO reconciliation_items (` + reconciliationItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, item := range items {
		m := mapping.ToModelReconciliationItem(item)
		batch.Queue(query,
			m.ItemID,
			m.ReconciliationID,
			m.EntryID,
			m.Description,
			m.BookAmount,
			m.BankAmount,
			m.IsMatched,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute item insert batch for reconciliation "+reconciliationID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateStatus flips the reconciliation lifecycle status.
func (r *PgxReconciliationRepository) UpdateStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus) error {
	query := `UPDATE reconciliations SET status = $2, last_updated_at = NOW() WHERE reconciliation_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, reconciliationID, string(status))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for reconciliation "+reconciliationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
