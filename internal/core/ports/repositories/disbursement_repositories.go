package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// ApproveRequestParams carries everything the repository needs to execute an
// approval atomically: the status flip, the optional budget deduction, the
// journal entry with its lines, and the resulting account balance changes.
// Either all of these are applied or none are.
type ApproveRequestParams struct {
	RequestID      string
	ApproverID     string
	ApprovedAt     time.Time
	Deduction      *domain.BudgetDeduction
	Entry          domain.JournalEntry
	Lines          []domain.JournalEntryLine
	BalanceChanges map[string]decimal.Decimal
}

// DisbursementReader defines read operations for disbursement request data
type DisbursementReader interface {
	// FindRequestByID retrieves a disbursement request by its business request ID.
	FindRequestByID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error)

	// FindPendingByRequestID retrieves a disbursement request by its business
	// request ID, returning apperrors.ErrRequestNotPending when the request
	// exists but has already been decided.
	FindPendingByRequestID(ctx context.Context, requestID string) (*domain.DisbursementRequest, error)

	// ListRequests retrieves a paginated list of disbursement requests,
	// optionally filtered by status.
	ListRequests(ctx context.Context, status *domain.RequestStatus, limit int, offset int) ([]domain.DisbursementRequest, error)
}

// DisbursementWriter defines write operations for disbursement request data
type DisbursementWriter interface {
	// CreateRequest persists a new disbursement request in PENDING status.
	CreateRequest(ctx context.Context, request domain.DisbursementRequest) error

	// ApproveRequest flips the request to APPROVED and applies the budget
	// deduction, journal entry and balance changes in a single database
	// transaction. The status flip is guarded on PENDING; a concurrent
	// decision surfaces as apperrors.ErrRequestNotPending and nothing is
	// written.
	ApproveRequest(ctx context.Context, params ApproveRequestParams) error

	// RejectRequest flips the request to REJECTED, guarded on PENDING the
	// same way ApproveRequest is.
	RejectRequest(ctx context.Context, requestID string, approverID string, reason string, now time.Time) error
}

// DisbursementRepositoryFacade combines all disbursement-related repository interfaces
// This is a facade for clients that need access to all operations
type DisbursementRepositoryFacade interface {
	DisbursementReader
	DisbursementWriter
}
