package services

import (
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/pkg/config"
)

// NewServiceContainer wires all application services from the repository
// provider and config.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	policy := NewPolicyTable(cfg.PolicyRules)
	dispatcher := NewPayrollDispatcher(cfg.Payroll)
	notificationSvc := NewNotificationService(repos.NotificationRepo)

	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo, cfg.CurrencyCode),
		Ledger:       NewLedgerService(repos.JournalRepo, repos.AccountRepo, cfg.CurrencyCode),
		Budget:       NewBudgetService(repos.BudgetRepo),
		Disbursement: NewDisbursementService(repos.DisbursementRepo, repos.BudgetRepo),
		Approval: NewApprovalService(
			repos.DisbursementRepo,
			repos.AccountRepo,
			policy,
			dispatcher,
			notificationSvc,
			cfg.CurrencyCode,
			cfg.Payroll.Department,
		),
		Notification: notificationSvc,
		Payroll:      dispatcher,
	}
}
