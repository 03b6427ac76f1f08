package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	"github.com/felix-harvey/microfinancial-sub002/internal/models"
	"github.com/felix-harvey/microfinancial-sub002/internal/utils/mapping"
)

type PgxDisbursementRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
	budgetRepo  portsrepo.BudgetRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// newPgxDisbursementRepository creates a new repository for disbursement request data.
func newPgxDisbursementRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portsrepo.DisbursementRepositoryFacade {
	return &PgxDisbursementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		budgetRepo:     budgetRepo,
		journalRepo:    journalRepo,
	}
}

// Ensure PgxDisbursementRepository implements portsrepo.DisbursementRepositoryFacade
var _ portsrepo.DisbursementRepositoryFacade = (*PgxDisbursementRepository)(nil)

const disbursementColumns = `disbursement_id, request_id, description, amount, department, budget_proposal_id, external_reference, beneficiaries, status, date_requested, date_approved, approved_by, rejection_reason, created_at, created_by, last_updated_at, last_updated_by, version`

func scanDisbursementRow(row pgx.Row) (models.DisbursementRequest, error) {
	var m models.DisbursementRequest
	err := row.Scan(
		&m.DisbursementID,
		&m.RequestID,
		&m.Description,
		&m.Amount,
		&m.Department,
		&m.BudgetProposalID,
		&m.ExternalReference,
		&m.Beneficiaries,
		&m.Status,
		&m.DateRequested,
		&m.DateApproved,
		&m.ApprovedBy,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// CreateRequest inserts a new disbursement request.
func (r *PgxDisbursementRepository) CreateRequest(ctx context.Context, request domain.DisbursementRequest) error {
	modelReq, err := mapping.ToModelDisbursementRequest(request)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize disbursement request "+request.RequestID, err)
	}

	query := `
		INSERT INTO disbursement_requests (disbursement_id, request_id, description, amount, department, budget_proposal_id, external_reference, beneficiaries, status, date_requested, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelReq.DisbursementID,
		modelReq.RequestID,
		modelReq.Description,
		modelReq.Amount,
		modelReq.Department,
		modelReq.BudgetProposalID,
		modelReq.ExternalReference,
		modelReq.Beneficiaries,
		modelReq.Status,
		modelReq.DateRequested,
		modelReq.CreatedAt,
		modelReq.CreatedBy,
		modelReq.LastUpdatedAt,
		modelReq.LastUpdatedBy,
		modelReq.Version,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on request_id
			return fmt.Errorf("%w: disbursement request %s already exists", apperrors.ErrDuplicate, modelReq.RequestID)
		}
		return fmt.Errorf("failed to save disbursement request %s: %w", modelReq.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves a disbursement request by its business request ID.
func (r *PgxDisbursementRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error) {
	query := `SELECT ` + disbursementColumns + ` FROM disbursement_requests WHERE request_id = $1;`

	modelReq, err := scanDisbursementRow(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find disbursement request %s: %w", requestID, err)
	}

	domainReq, err := mapping.ToDomainDisbursementRequest(modelReq)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode disbursement request "+requestID, err)
	}
	return &domainReq, nil
}

// FindPendingByRequestID retrieves a request by its business request ID,
// distinguishing a missing request from one that has already been decided.
func (r *PgxDisbursementRepository) FindPendingByRequestID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error) {
	request, err := r.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestPending {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrRequestNotPending, requestID, request.Status)
	}
	return request, nil
}

// ListRequests retrieves a paginated list of disbursement requests, optionally filtered by status.
func (r *PgxDisbursementRepository) ListRequests(ctx context.Context, status *domain.RequestStatus, limit int, offset int) ([]domain.DisbursementRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows pgx.Rows
	var err error
	if status != nil {
		query := `
			SELECT ` + disbursementColumns + `
			FROM disbursement_requests
			WHERE status = $1
			ORDER BY date_requested DESC, request_id
			LIMIT $2 OFFSET $3;
		`
		rows, err = r.Pool.Query(ctx, query, *status, limit, offset)
	} else {
		query := `
			SELECT ` + disbursementColumns + `
			FROM disbursement_requests
			ORDER BY date_requested DESC, request_id
			LIMIT $1 OFFSET $2;
		`
		rows, err = r.Pool.Query(ctx, query, limit, offset)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query disbursement requests: %w", err)
	}
	defer rows.Close()

	requests := []models.DisbursementRequest{}
	for rows.Next() {
		m, scanErr := scanDisbursementRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan disbursement request row: %w", scanErr)
		}
		requests = append(requests, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating disbursement request rows: %w", err)
	}

	domainRequests, err := mapping.ToDomainDisbursementRequestSlice(requests)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode disbursement request rows", err)
	}
	return domainRequests, nil
}

// ApproveRequest applies the full approval in a single DB transaction: the
// PENDING-guarded status flip, the optional budget deduction, the journal
// entry with its lines, and the account balance updates. Losing the guard
// surfaces as ErrRequestNotPending with nothing written.
func (r *PgxDisbursementRepository) ApproveRequest(ctx context.Context, params portsrepo.ApproveRequestParams) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction is committed

	// 1. Flip the request status, guarded on PENDING. Concurrent deciders
	// race here; exactly one UPDATE wins.
	statusQuery := `
		UPDATE disbursement_requests
		SET status = $2, date_approved = $3, approved_by = $4, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE request_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, statusQuery,
		params.RequestID,
		models.RequestApproved,
		params.ApprovedAt,
		params.ApproverID,
		models.RequestPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for request "+params.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s", apperrors.ErrRequestNotPending, params.RequestID)
	}

	// 2. Consume the linked budget, if any.
	if params.Deduction != nil {
		if err := r.budgetRepo.DeductBudgetInTx(ctx, tx, params.Deduction.BudgetID, params.Deduction.Amount, params.ApproverID, params.ApprovedAt); err != nil {
			return err
		}
	}

	// 3. Post the journal entry with its lines.
	if err := r.journalRepo.SaveEntryInTx(ctx, tx, params.Entry, params.Lines); err != nil {
		return err
	}

	// 4. Lock the affected accounts and apply the balance changes.
	accountIDs := make([]string, 0, len(params.BalanceChanges))
	for accID := range params.BalanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, params.BalanceChanges, params.ApproverID, params.ApprovedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit approval for request "+params.RequestID, err)
	}

	return nil
}

// RejectRequest flips the request to REJECTED, guarded on PENDING. The decider
// lands in approved_by, the same column an approval stamps.
func (r *PgxDisbursementRepository) RejectRequest(ctx context.Context, requestID string, approverID string, reason string, now time.Time) error {
	query := `
		UPDATE disbursement_requests
		SET status = $2, rejection_reason = $3, approved_by = $5, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE request_id = $1 AND status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		requestID,
		models.RequestRejected,
		reason,
		now,
		approverID,
		models.RequestPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reject request "+requestID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s", apperrors.ErrRequestNotPending, requestID)
	}

	return nil
}
