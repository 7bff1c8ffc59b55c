package services

import (
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Authorization and audit are shared by every other service
	container.Authorizer = NewAuthorizer(repos.MembershipRepo)
	container.Audit = NewAuditRecorder(repos.AuditRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuthorizer(container.Authorizer),
		WithAccountAudit(container.Audit),
		WithAccountLedgerCache(repos.LedgerCache),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		WithJournalAuthorizer(container.Authorizer),
		WithJournalAudit(container.Audit),
		WithJournalLedgerCache(repos.LedgerCache),
	)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.LedgerCache, container.Authorizer)

	container.Reporting = NewReportingService(
		repos.LedgerRepo,
		WithReportingAuthorizer(container.Authorizer),
		WithReportingLedgerCache(repos.LedgerCache),
	)

	container.Filing = NewFilingService(
		repos.FilingRepo,
		repos.Upstream,
		WithFilingAuthorizer(container.Authorizer),
		WithFilingAudit(container.Audit),
	)

	return container
}
