package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// BudgetReader defines read operations for budget proposal data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget proposal by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetProposal, error)

	// ListBudgets retrieves a paginated list of budget proposals.
	ListBudgets(ctx context.Context, limit int, offset int) ([]domain.BudgetProposal, error)
}

// BudgetWriter defines write operations for budget proposal data
type BudgetWriter interface {
	// SaveBudget persists a new budget proposal.
	SaveBudget(ctx context.Context, budget domain.BudgetProposal) error
}

// BudgetTransactionSupport defines operations that consume budget within a transaction
type BudgetTransactionSupport interface {
	// DeductBudgetInTx locks the budget row, verifies availability and applies
	// the deduction within the given transaction. It returns
	// apperrors.ErrInsufficientBudget when the remaining amount cannot cover
	// the deduction, leaving the row untouched.
	DeductBudgetInTx(ctx context.Context, tx pgx.Tx, budgetID string, amount decimal.Decimal, userID string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
// This is a facade for clients that need access to all operations
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
	BudgetTransactionSupport
}
