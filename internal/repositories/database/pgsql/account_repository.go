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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, company_id, code, name, account_type, parent_account_id, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.Description,
		&m.IsActive,
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

// FindAccountByID retrieves an account scoped to a company.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID, scoped to a company.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return accounts, nil
}

// FindAccountByCode retrieves an account by its company-unique code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}

	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// ListAccounts retrieves all accounts for a company, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return accounts, nil
}

// HasPostedLines reports whether any posted journal line references the account.
func (r *PgxAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			WHERE l.account_id = $1 AND e.status IN ('POSTED', 'REVERSED')
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check posted lines for account "+accountID, err)
	}
	return exists, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
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
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// UpdateAccount updates mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2,
		    account_type = $3,
		    parent_account_id = $4,
		    description = $5,
		    is_active = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
