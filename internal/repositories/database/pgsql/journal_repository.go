package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/finbooks/ledger_backend/internal/models"
	"github.com/finbooks/ledger_backend/internal/utils/mapping"
	"github.com/finbooks/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, company_id, entry_number, entry_date, status, reference_type, reference_id,
	narration, total_debit, total_credit, reversed_by_id, reversal_of_id, reversal_reason, financial_year_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit_amount, credit_amount, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Status,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Narration,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.ReversedByID,
		&m.ReversalOfID,
		&m.ReversalReason,
		&m.FinancialYearID,
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

// FindEntryByID retrieves a journal entry by its ID, without lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of a journal entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntriesByCompany retrieves a paginated list of entries using token-based
// pagination, ordered by entry date then creation time, newest first.
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, status domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	filterClause := `WHERE company_id = $1`
	args := []interface{}{companyID}

	if status != "" {
		filterClause += ` AND status = $` + strconv.Itoa(len(args)+1)
		args = append(args, string(status))
	}

	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// NextEntryNumber allocates the next per-company entry sequence value using
// an upsert on the journal_sequences counter row.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context, companyID string) (int64, error) {
	query := `
		INSERT INTO journal_sequences (company_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate entry number for company "+companyID, err)
	}
	return seq, nil
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.CompanyID,
		m.EntryNumber,
		m.EntryDate,
		m.Status,
		m.ReferenceType,
		m.ReferenceID,
		m.Narration,
		m.TotalDebit,
		m.TotalCredit,
		m.ReversedByID,
		m.ReversalOfID,
		m.ReversalReason,
		m.FinancialYearID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			l.LineID,
			l.EntryID,
			l.AccountID,
			l.DebitAmount,
			l.CreditAmount,
			l.Description,
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line insert batch", err)
	}
	return nil
}

// SaveEntry persists a new draft entry header.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceLines swaps the full line set of a draft entry and updates its
// totals in one transaction.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entry.EntryID, err)
	}

	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET total_debit = $2,
		    total_credit = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		entry.EntryID,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for entry "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// The entry left DRAFT between the service check and this update.
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

// PostEntry atomically applies the per-account deltas to the financial year's
// balance rows and flips the entry to POSTED. On any failure the transaction
// rolls back and no balance change is retained.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    financial_year_id = $2,
		    total_debit = $3,
		    total_credit = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, statusQuery,
		entry.EntryID,
		fy.FinancialYearID,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry posted "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Concurrent post of the same draft loses here.
		return apperrors.ErrConflict
	}

	if err := applyDeltasTx(ctx, tx, fy, deltas, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReverseEntry atomically persists the mirrored reversal entry with its lines,
// applies its deltas, links both entries and marks the original REVERSED.
func (r *PgxJournalRepository) ReverseEntry(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalLine, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, reversal); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}

	linkQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversed_by_id = $2,
		    reversal_reason = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, linkQuery,
		original.EntryID,
		reversal.EntryID,
		original.ReversalReason,
		original.LastUpdatedAt,
		original.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+original.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Concurrent reversal of the same entry loses here.
		return apperrors.ErrConflict
	}

	if err := applyDeltasTx(ctx, tx, fy, deltas, reversal.LastUpdatedBy, reversal.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
