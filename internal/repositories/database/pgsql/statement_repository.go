package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement inputs and
// stored snapshots.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

// SumPostedLinesBetween aggregates posted lines per account over a date range,
// restricted to the given account types (all types when empty). The read runs
// under repeatable read so concurrent postings cannot split the aggregate.
func (r *PgxStatementRepository) SumPostedLinesBetween(ctx context.Context, companyID string, from, to time.Time, types []domain.AccountType) ([]domain.PeriodAccountTotal, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit_amount), 0) AS debit_total,
			COALESCE(SUM(l.credit_amount), 0) AS credit_total
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.company_id = $1
			AND e.entry_date BETWEEN $2 AND $3
			AND e.status IN ('POSTED', 'REVERSED')
			AND ($4::text[] IS NULL OR a.account_type = ANY($4))
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	var typeFilter []string
	if len(types) > 0 {
		typeFilter = make([]string, len(types))
		for i, t := range types {
			typeFilter[i] = string(t)
		}
	}

	tx, err := r.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, query, companyID, from, to, typeFilter)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate posted lines for company "+companyID, err)
	}
	defer rows.Close()

	totals := []domain.PeriodAccountTotal{}
	for rows.Next() {
		var t domain.PeriodAccountTotal
		var accountType string
		if err := rows.Scan(&t.AccountID, &t.Code, &t.Name, &accountType, &t.DebitTotal, &t.CreditTotal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period total row", err)
		}
		t.AccountType = domain.AccountType(accountType)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period total rows", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return totals, nil
}

// FindCashMovements retrieves every posted entry's net effect on cash/bank
// named asset accounts over a date range, with the names of the non-cash
// counter accounts aggregated for classification.
func (r *PgxStatementRepository) FindCashMovements(ctx context.Context, companyID string, from, to time.Time) ([]domain.CashMovement, error) {
	query := `
		WITH cash_lines AS (
			SELECT l.entry_id,
			       SUM(l.debit_amount - l.credit_amount) AS net_amount
			FROM journal_lines l
			JOIN accounts a ON l.account_id = a.account_id
			WHERE a.account_type = 'ASSET'
				AND (a.name ILIKE '%cash%' OR a.name ILIKE '%bank%')
			GROUP BY l.entry_id
		)
		SELECT e.entry_id,
		       e.entry_date,
		       e.narration,
		       c.net_amount,
		       COALESCE(string_agg(DISTINCT ca.name, ', '), '') AS counter_accounts
		FROM journal_entries e
		JOIN cash_lines c ON c.entry_id = e.entry_id
		LEFT JOIN journal_lines cl ON cl.entry_id = e.entry_id
		LEFT JOIN accounts ca ON cl.account_id = ca.account_id
			AND NOT (ca.account_type = 'ASSET' AND (ca.name ILIKE '%cash%' OR ca.name ILIKE '%bank%'))
		WHERE e.company_id = $1
			AND e.entry_date BETWEEN $2 AND $3
			AND e.status IN ('POSTED', 'REVERSED')
		GROUP BY e.entry_id, e.entry_date, e.narration, c.net_amount
		ORDER BY e.entry_date, e.entry_id;
	`
	tx, err := r.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash movements for company "+companyID, err)
	}
	defer rows.Close()

	movements := []domain.CashMovement{}
	for rows.Next() {
		var m domain.CashMovement
		var amount decimal.Decimal
		if err := rows.Scan(&m.EntryID, &m.EntryDate, &m.Narration, &amount, &m.CounterAccounts); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash movement row", err)
		}
		m.Amount = amount
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash movement rows", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return movements, nil
}

// saveSnapshot stores one immutable statement document.
func (r *PgxStatementRepository) saveSnapshot(ctx context.Context, statementID, companyID string, kind domain.StatementKind, generatedAt time.Time, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode statement "+statementID, err)
	}

	query := `
		INSERT INTO financial_statements (statement_id, company_id, kind, generated_at, payload)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, statementID, companyID, string(kind), generatedAt, raw); err != nil {
		return apperrors.NewAppError(500, "failed to insert statement "+statementID, err)
	}
	return nil
}

// loadSnapshot retrieves one stored statement document into dest.
func (r *PgxStatementRepository) loadSnapshot(ctx context.Context, companyID, statementID string, kind domain.StatementKind, dest interface{}) error {
	query := `
		SELECT payload
		FROM financial_statements
		WHERE company_id = $1 AND statement_id = $2 AND kind = $3;
	`
	var raw []byte
	err := r.Pool.QueryRow(ctx, query, companyID, statementID, string(kind)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to find statement "+statementID, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return apperrors.NewAppError(500, "failed to decode statement "+statementID, err)
	}
	return nil
}

func (r *PgxStatementRepository) SaveTrialBalance(ctx context.Context, tb domain.TrialBalance) error {
	return r.saveSnapshot(ctx, tb.StatementID, tb.CompanyID, domain.StatementTrialBalance, tb.GeneratedAt, tb)
}

func (r *PgxStatementRepository) SaveBalanceSheet(ctx context.Context, bs domain.BalanceSheet) error {
	return r.saveSnapshot(ctx, bs.StatementID, bs.CompanyID, domain.StatementBalanceSheet, bs.GeneratedAt, bs)
}

func (r *PgxStatementRepository) SaveProfitLoss(ctx context.Context, pl domain.ProfitLossStatement) error {
	return r.saveSnapshot(ctx, pl.StatementID, pl.CompanyID, domain.StatementProfitLoss, pl.GeneratedAt, pl)
}

func (r *PgxStatementRepository) SaveCashFlow(ctx context.Context, cf domain.CashFlowStatement) error {
	return r.saveSnapshot(ctx, cf.StatementID, cf.CompanyID, domain.StatementCashFlow, cf.GeneratedAt, cf)
}

func (r *PgxStatementRepository) GetTrialBalance(ctx context.Context, companyID, statementID string) (*domain.TrialBalance, error) {
	var tb domain.TrialBalance
	if err := r.loadSnapshot(ctx, companyID, statementID, domain.StatementTrialBalance, &tb); err != nil {
		return nil, err
	}
	return &tb, nil
}

func (r *PgxStatementRepository) GetBalanceSheet(ctx context.Context, companyID, statementID string) (*domain.BalanceSheet, error) {
	var bs domain.BalanceSheet
	if err := r.loadSnapshot(ctx, companyID, statementID, domain.StatementBalanceSheet, &bs); err != nil {
		return nil, err
	}
	return &bs, nil
}

func (r *PgxStatementRepository) GetProfitLoss(ctx context.Context, companyID, statementID string) (*domain.ProfitLossStatement, error) {
	var pl domain.ProfitLossStatement
	if err := r.loadSnapshot(ctx, companyID, statementID, domain.StatementProfitLoss, &pl); err != nil {
		return nil, err
	}
	return &pl, nil
}

func (r *PgxStatementRepository) GetCashFlow(ctx context.Context, companyID, statementID string) (*domain.CashFlowStatement, error) {
	var cf domain.CashFlowStatement
	if err := r.loadSnapshot(ctx, companyID, statementID, domain.StatementCashFlow, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}
