package pgsql

import (
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	financialYearRepo := newPgxFinancialYearRepository(dbPool)
	statementRepo := newPgxStatementRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		JournalRepo:        journalRepo,
		BalanceRepo:        balanceRepo,
		FinancialYearRepo:  financialYearRepo,
		StatementRepo:      statementRepo,
		ReconciliationRepo: reconciliationRepo,
	}
}
