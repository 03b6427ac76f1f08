package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	"github.com/felix-harvey/microfinancial-sub002/internal/models"
	"github.com/felix-harvey/microfinancial-sub002/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// newPgxBudgetRepository creates a new repository for budget proposal data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, title, allocated_amount, spent_amount, remaining_amount, created_at, created_by, last_updated_at, last_updated_by, version`

func scanBudgetRow(row pgx.Row) (models.BudgetProposal, error) {
	var m models.BudgetProposal
	err := row.Scan(
		&m.BudgetID,
		&m.Title,
		&m.AllocatedAmount,
		&m.SpentAmount,
		&m.RemainingAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// SaveBudget inserts a new budget proposal.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.BudgetProposal) error {
	modelBudget := mapping.ToModelBudgetProposal(budget)

	query := `
		INSERT INTO budget_proposals (budget_id, title, allocated_amount, spent_amount, remaining_amount, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.Title,
		modelBudget.AllocatedAmount,
		modelBudget.SpentAmount,
		modelBudget.RemainingAmount,
		modelBudget.CreatedAt,
		modelBudget.CreatedBy,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
		modelBudget.Version,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: budget proposal %s already exists", apperrors.ErrDuplicate, modelBudget.BudgetID)
		}
		return fmt.Errorf("failed to save budget proposal %s: %w", modelBudget.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget proposal by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetProposal, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_proposals WHERE budget_id = $1;`

	modelBudget, err := scanBudgetRow(r.pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget proposal by ID %s: %w", budgetID, err)
	}

	domainBudget := mapping.ToDomainBudgetProposal(modelBudget)
	return &domainBudget, nil
}

// ListBudgets retrieves a paginated list of budget proposals.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.BudgetProposal, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + budgetColumns + `
		FROM budget_proposals
		ORDER BY created_at DESC, budget_id
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget proposals: %w", err)
	}
	defer rows.Close()

	budgets := []models.BudgetProposal{}
	for rows.Next() {
		m, scanErr := scanBudgetRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan budget proposal row: %w", scanErr)
		}
		budgets = append(budgets, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget proposal rows: %w", err)
	}

	return mapping.ToDomainBudgetProposalSlice(budgets), nil
}

// DeductBudgetInTx locks the budget row and applies the deduction. The update
// is guarded on remaining_amount so the row never goes negative; if the guard
// rejects the update the caller gets ErrInsufficientBudget and must roll back.
func (r *PgxBudgetRepository) DeductBudgetInTx(ctx context.Context, tx pgx.Tx, budgetID string, amount decimal.Decimal, userID string, now time.Time) error {
	var remaining decimal.Decimal
	lockQuery := `SELECT remaining_amount FROM budget_proposals WHERE budget_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, budgetID).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: budget proposal %s", apperrors.ErrNotFound, budgetID)
		}
		return fmt.Errorf("failed to lock budget proposal %s: %w", budgetID, err)
	}

	if remaining.LessThan(amount) {
		return fmt.Errorf("%w: budget %s has %s remaining, needs %s", apperrors.ErrInsufficientBudget, budgetID, remaining.String(), amount.String())
	}

	updateQuery := `
		UPDATE budget_proposals
		SET spent_amount = spent_amount + $2,
		    remaining_amount = remaining_amount - $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE budget_id = $1 AND remaining_amount >= $2;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, budgetID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deduct from budget proposal %s: %w", budgetID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// The row is locked, so this only fires if the guard rejected the update.
		return fmt.Errorf("%w: budget %s cannot cover %s", apperrors.ErrInsufficientBudget, budgetID, amount.String())
	}

	return nil
}
