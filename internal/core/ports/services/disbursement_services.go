package services

import (
	"context"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
)

// DisbursementReaderSvc defines read operations for disbursement request data
type DisbursementReaderSvc interface {
	// GetRequest retrieves a disbursement request by its business request ID.
	GetRequest(ctx context.Context, requestID string) (*domain.DisbursementRequest, error)

	// ListRequests retrieves a paginated list of disbursement requests.
	ListRequests(ctx context.Context, params dto.ListDisbursementsParams) ([]domain.DisbursementRequest, error)
}

// DisbursementWriterSvc defines write operations for disbursement request data
type DisbursementWriterSvc interface {
	// CreateRequest files a new disbursement request in PENDING status.
	CreateRequest(ctx context.Context, req dto.CreateDisbursementRequest, creatorUserID string) (*domain.DisbursementRequest, error)
}

// DisbursementSvcFacade combines all disbursement-related service interfaces
type DisbursementSvcFacade interface {
	DisbursementReaderSvc
	DisbursementWriterSvc
}

// ApprovalSvc drives the approve/reject decision on a pending disbursement
// request. Approve resolves the posting policy, builds the journal entry,
// consumes budget and flips the status in one atomic write, then fires the
// post-commit side effects (payroll callback, notification).
type ApprovalSvc interface {
	// Approve decides a pending request. It returns the updated request and
	// the journal entry that was posted for it.
	Approve(ctx context.Context, requestID string, approverID string) (*domain.DisbursementRequest, *domain.JournalEntry, error)

	// Reject declines a pending request with a reason. No financial records
	// are written.
	Reject(ctx context.Context, requestID string, approverID string, reason string) (*domain.DisbursementRequest, error)
}
