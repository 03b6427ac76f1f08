package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
	"github.com/felix-harvey/microfinancial-sub002/internal/middleware"
)

// disbursementService provides disbursement request filing and retrieval.
// The approve/reject decision lives in approvalService.
type disbursementService struct {
	disbursementRepo portsrepo.DisbursementRepositoryFacade
	budgetRepo       portsrepo.BudgetRepositoryFacade
}

// NewDisbursementService creates a new DisbursementService.
func NewDisbursementService(disbursementRepo portsrepo.DisbursementRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.DisbursementSvcFacade {
	return &disbursementService{
		disbursementRepo: disbursementRepo,
		budgetRepo:       budgetRepo,
	}
}

var _ portssvc.DisbursementSvcFacade = (*disbursementService)(nil)

// CreateRequest files a new disbursement request in PENDING status.
func (s *disbursementService) CreateRequest(ctx context.Context, req dto.CreateDisbursementRequest, creatorUserID string) (*domain.DisbursementRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: disbursement amount must be positive", apperrors.ErrValidation)
	}

	existing, err := s.disbursementRepo.FindRequestByID(ctx, req.RequestID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing request", slog.String("error", err.Error()), slog.String("request_id", req.RequestID))
		return nil, fmt.Errorf("failed to check request ID: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: request %s already exists", apperrors.ErrDuplicate, req.RequestID)
	}

	// The referenced budget must exist up front; availability is only checked
	// at approval time.
	if req.BudgetProposalID != nil {
		if _, err := s.budgetRepo.FindBudgetByID(ctx, *req.BudgetProposalID); err != nil {
			return nil, fmt.Errorf("failed to resolve budget proposal %s: %w", *req.BudgetProposalID, err)
		}
	}

	beneficiaries := make([]domain.BeneficiaryRecord, len(req.Beneficiaries))
	for i, b := range req.Beneficiaries {
		beneficiaries[i] = domain.BeneficiaryRecord{EmployeeID: b.EmployeeID, Name: b.Name}
	}

	now := time.Now().UTC()
	request := domain.DisbursementRequest{
		DisbursementID:    uuid.NewString(),
		RequestID:         req.RequestID,
		Description:       req.Description,
		Amount:            req.Amount,
		Department:        req.Department,
		BudgetProposalID:  req.BudgetProposalID,
		ExternalReference: req.ExternalReference,
		Beneficiaries:     beneficiaries,
		Status:            domain.RequestPending,
		DateRequested:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.disbursementRepo.CreateRequest(ctx, request); err != nil {
		logger.Error("Failed to create disbursement request", slog.String("error", err.Error()), slog.String("request_id", req.RequestID))
		return nil, fmt.Errorf("failed to create disbursement request: %w", err)
	}

	logger.Info("Disbursement request filed", slog.String("request_id", request.RequestID), slog.String("department", request.Department))
	return &request, nil
}

// GetRequest retrieves a disbursement request by its business request ID.
func (s *disbursementService) GetRequest(ctx context.Context, requestID string) (*domain.DisbursementRequest, error) {
	request, err := s.disbursementRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	return request, nil
}

// ListRequests retrieves a paginated list of disbursement requests.
func (s *disbursementService) ListRequests(ctx context.Context, params dto.ListDisbursementsParams) ([]domain.DisbursementRequest, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var status *domain.RequestStatus
	if params.Status != nil {
		st := domain.RequestStatus(*params.Status)
		status = &st
	}

	requests, err := s.disbursementRepo.ListRequests(ctx, status, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list disbursement requests: %w", err)
	}
	return requests, nil
}
