package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/finbooks/ledger_backend/internal/models"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/finbooks/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const balanceColumns = `company_id, account_id, financial_year_id, opening_balance, debit_total, credit_total, current_balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for account balance data.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func scanBalance(row pgx.Row) (*models.AccountBalance, error) {
	var m models.AccountBalance
	err := row.Scan(
		&m.CompanyID,
		&m.AccountID,
		&m.FinancialYearID,
		&m.OpeningBalance,
		&m.DebitTotal,
		&m.CreditTotal,
		&m.CurrentBalance,
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

// FindBalance retrieves the balance row for an account/year pair.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, accountID, financialYearID string) (*domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances WHERE account_id = $1 AND financial_year_id = $2;`

	m, err := scanBalance(r.Pool.QueryRow(ctx, query, accountID, financialYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for account "+accountID, err)
	}

	balance := mapping.ToDomainAccountBalance(*m)
	return &balance, nil
}

// ListBalanceDetails retrieves every balance row of a financial year joined
// with its account's code, name and type.
func (r *PgxBalanceRepository) ListBalanceDetails(ctx context.Context, companyID, financialYearID string) ([]domain.AccountBalanceDetail, error) {
	query := `
		SELECT b.company_id, b.account_id, b.financial_year_id, b.opening_balance, b.debit_total, b.credit_total, b.current_balance,
		       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
		       a.code, a.name, a.account_type, a.is_active
		FROM account_balances b
		JOIN accounts a ON b.account_id = a.account_id
		WHERE b.company_id = $1 AND b.financial_year_id = $2
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, financialYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance details for year "+financialYearID, err)
	}
	defer rows.Close()

	details := []domain.AccountBalanceDetail{}
	for rows.Next() {
		var m models.AccountBalance
		var d domain.AccountBalanceDetail
		var accountType string
		if err := rows.Scan(
			&m.CompanyID,
			&m.AccountID,
			&m.FinancialYearID,
			&m.OpeningBalance,
			&m.DebitTotal,
			&m.CreditTotal,
			&m.CurrentBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&d.Code,
			&d.Name,
			&accountType,
			&d.IsActive,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance detail row", err)
		}
		d.AccountBalance = mapping.ToDomainAccountBalance(m)
		d.AccountType = domain.AccountType(accountType)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance detail rows", err)
	}

	return details, nil
}

// SumPostedLines replays every posted journal line dated inside the financial
// year and returns the per-account debit/credit totals. Reversed entries stay
// in the replay: their balance effects were applied and remain mirrored by
// their reversal entries.
func (r *PgxBalanceRepository) SumPostedLines(ctx context.Context, companyID, financialYearID string) (map[string]domain.BalanceDelta, error) {
	query := `
		SELECT l.account_id,
		       COALESCE(SUM(l.debit_amount), 0) AS debit_total,
		       COALESCE(SUM(l.credit_amount), 0) AS credit_total
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.company_id = $1
			AND e.financial_year_id = $2
			AND e.status IN ('POSTED', 'REVERSED')
		GROUP BY l.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, financialYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to replay posted lines for year "+financialYearID, err)
	}
	defer rows.Close()

	deltas := make(map[string]domain.BalanceDelta)
	for rows.Next() {
		var accountID string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan replay row", err)
		}
		deltas[accountID] = domain.BalanceDelta{Debit: debit, Credit: credit}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating replay rows", err)
	}

	return deltas, nil
}

// ApplyDeltas locks the touched balance rows, adds the deltas and recomputes
// each signed current balance inside one transaction.
func (r *PgxBalanceRepository) ApplyDeltas(ctx context.Context, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta, actor string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyDeltasTx(ctx, tx, fy, deltas, actor, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SeedOpeningBalances creates balance rows carrying opening balances into a
// financial year. A pre-existing row for any pair aborts the whole seed.
func (r *PgxBalanceRepository) SeedOpeningBalances(ctx context.Context, balances []domain.AccountBalance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO account_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, b := range balances {
		m := mapping.ToModelAccountBalance(b)
		batch.Queue(query,
			m.CompanyID,
			m.AccountID,
			m.FinancialYearID,
			m.OpeningBalance,
			m.DebitTotal,
			m.CreditTotal,
			m.CurrentBalance,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to seed opening balances", err)
	}

	return r.Commit(ctx, tx)
}

// applyDeltasTx is the single write path for balance rows. It lazily creates
// missing rows, locks every touched row in deterministic order, adds the
// deltas and stores the recomputed signed balance. Posting and reversal reuse
// it inside their own transactions.
func applyDeltasTx(ctx context.Context, tx pgx.Tx, fy domain.FinancialYear, deltas map[string]domain.BalanceDelta, actor string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	// Deterministic lock order across concurrent postings.
	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	insertQuery := `
		INSERT INTO account_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, 0, 0, 0, 0, $4, $5, $6, $7)
		ON CONFLICT (account_id, financial_year_id) DO NOTHING;
	`
	for _, accountID := range accountIDs {
		if _, err := tx.Exec(ctx, insertQuery, fy.CompanyID, accountID, fy.FinancialYearID, now, actor, now, actor); err != nil {
			return apperrors.NewAppError(500, "failed to create balance row for account "+accountID, err)
		}
	}

	lockQuery := `
		SELECT b.account_id, b.opening_balance, b.debit_total, b.credit_total, a.account_type
		FROM account_balances b
		JOIN accounts a ON b.account_id = a.account_id
		WHERE b.financial_year_id = $1 AND b.account_id = ANY($2)
		ORDER BY b.account_id
		FOR UPDATE OF b;
	`
	rows, err := tx.Query(ctx, lockQuery, fy.FinancialYearID, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock balance rows", err)
	}

	type lockedRow struct {
		opening     decimal.Decimal
		debitTotal  decimal.Decimal
		creditTotal decimal.Decimal
		accountType domain.AccountType
	}
	locked := make(map[string]lockedRow, len(accountIDs))
	for rows.Next() {
		var accountID, accountType string
		var lr lockedRow
		if err := rows.Scan(&accountID, &lr.opening, &lr.debitTotal, &lr.creditTotal, &accountType); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked balance row", err)
		}
		lr.accountType = domain.AccountType(accountType)
		locked[accountID] = lr
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked balance rows", err)
	}

	updateQuery := `
		UPDATE account_balances
		SET debit_total = $3,
		    credit_total = $4,
		    current_balance = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE account_id = $1 AND financial_year_id = $2;
	`
	batch := &pgx.Batch{}
	for _, accountID := range accountIDs {
		lr, ok := locked[accountID]
		if !ok {
			return apperrors.NewAppError(500, "balance row missing after lock for account "+accountID, nil)
		}
		delta := deltas[accountID]
		newDebit := lr.debitTotal.Add(delta.Debit)
		newCredit := lr.creditTotal.Add(delta.Credit)
		current, calcErr := accounting.SignedBalance(lr.accountType, lr.opening, newDebit, newCredit)
		if calcErr != nil {
			return apperrors.NewAppError(500, "failed to compute balance for account "+accountID, calcErr)
		}
		batch.Queue(updateQuery, accountID, fy.FinancialYearID, newDebit, newCredit, current, now, actor)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute balance update batch", err)
	}

	return nil
}
