package services

import (
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since journal and reconciliation depend on it
	container.Account = NewAccountService(repos.AccountRepo)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, repos.FinancialYearRepo)
	container.Balance = NewBalanceService(repos.BalanceRepo, repos.AccountRepo, repos.FinancialYearRepo)
	container.FinancialYear = NewFinancialYearService(repos.FinancialYearRepo, repos.BalanceRepo)
	container.Statement = NewStatementService(repos.StatementRepo, repos.BalanceRepo, repos.FinancialYearRepo)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.AccountRepo, repos.JournalRepo)

	return container
}
