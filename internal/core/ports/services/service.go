package services

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Balance        BalanceSvcFacade
	Statement      StatementSvcFacade
	FinancialYear  FinancialYearSvcFacade
	Reconciliation ReconciliationSvcFacade
}
