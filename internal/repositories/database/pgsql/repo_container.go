package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	disbursementRepo := newPgxDisbursementRepository(dbPool, accountRepo, budgetRepo, journalRepo)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		BudgetRepo:       budgetRepo,
		DisbursementRepo: disbursementRepo,
		NotificationRepo: notificationRepo,
	}
}
