package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/middleware"
	"github.com/felix-harvey/microfinancial-sub002/internal/utils/accounting"
)

// approvalService drives the approve/reject decision on pending disbursement
// requests. Approval resolves the posting policy, builds a balanced journal
// entry, consumes budget and flips the request status in one atomic
// repository call, then fires the post-commit side effects.
type approvalService struct {
	disbursementRepo  portsrepo.DisbursementRepositoryFacade
	accountRepo       portsrepo.AccountRepositoryFacade
	policy            *PolicyTable
	dispatcher        portssvc.PayrollDispatcherSvc
	notifications     portssvc.NotificationSvcFacade
	currencyCode      string
	payrollDepartment string
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(
	disbursementRepo portsrepo.DisbursementRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	policy *PolicyTable,
	dispatcher portssvc.PayrollDispatcherSvc,
	notifications portssvc.NotificationSvcFacade,
	currencyCode string,
	payrollDepartment string,
) portssvc.ApprovalSvc {
	if payrollDepartment == "" {
		payrollDepartment = "HR Payroll"
	}
	return &approvalService{
		disbursementRepo:  disbursementRepo,
		accountRepo:       accountRepo,
		policy:            policy,
		dispatcher:        dispatcher,
		notifications:     notifications,
		currencyCode:      currencyCode,
		payrollDepartment: payrollDepartment,
	}
}

var _ portssvc.ApprovalSvc = (*approvalService)(nil)

// Approve decides a pending request, posting its journal entry and consuming
// budget atomically. A concurrent decision or exhausted budget leaves the
// request untouched and surfaces as ErrRequestNotPending or
// ErrInsufficientBudget respectively.
func (s *approvalService) Approve(ctx context.Context, requestID string, approverID string) (*domain.DisbursementRequest, *domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.disbursementRepo.FindPendingByRequestID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrRequestNotPending) {
			logger.Error("Failed to load request for approval", slog.String("error", err.Error()), slog.String("request_id", requestID))
		}
		return nil, nil, err
	}

	// Resolve the accounts the posting policy charges for this request.
	debitCode := s.policy.ResolveDebitCode(request.Department, request.Description)
	creditCode := s.policy.CreditCode()

	debitAccount, err := s.accountRepo.FindAccountByCode(ctx, debitCode)
	if err != nil {
		logger.Error("Failed to resolve debit account", slog.String("error", err.Error()), slog.String("code", debitCode))
		return nil, nil, fmt.Errorf("failed to resolve debit account %s: %w", debitCode, err)
	}
	creditAccount, err := s.accountRepo.FindAccountByCode(ctx, creditCode)
	if err != nil {
		logger.Error("Failed to resolve credit account", slog.String("error", err.Error()), slog.String("code", creditCode))
		return nil, nil, fmt.Errorf("failed to resolve credit account %s: %w", creditCode, err)
	}
	if !debitAccount.IsActive {
		return nil, nil, fmt.Errorf("%w: account %s", ErrAccountInactive, debitAccount.AccountID)
	}
	if !creditAccount.IsActive {
		return nil, nil, fmt.Errorf("%w: account %s", ErrAccountInactive, creditAccount.AccountID)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     approverID,
		LastUpdatedAt: now,
		LastUpdatedBy: approverID,
	}

	entry := domain.JournalEntry{
		JournalID:    journalID,
		EntryRef:     newEntryRef(now),
		EntryDate:    now,
		Description:  "Auto-generated: " + request.Description,
		CurrencyCode: s.currencyCode,
		Status:       domain.Posted,
		AuditFields:  audit,
	}
	lines := []domain.JournalEntryLine{
		{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   debitAccount.AccountID,
			Debit:       request.Amount,
			AuditFields: audit,
		},
		{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   creditAccount.AccountID,
			Credit:      request.Amount,
			AuditFields: audit,
		},
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		logger.Error("Generated approval entry does not balance", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, nil, err
	}

	accountTypes := map[string]domain.AccountType{
		debitAccount.AccountID:  debitAccount.AccountType,
		creditAccount.AccountID: creditAccount.AccountType,
	}
	balanceChanges, err := accounting.BalanceDeltas(lines, accountTypes)
	if err != nil {
		return nil, nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	// A request with no budget linked skips budget tracking entirely.
	var deduction *domain.BudgetDeduction
	if request.BudgetProposalID != nil {
		deduction = &domain.BudgetDeduction{
			BudgetID: *request.BudgetProposalID,
			Amount:   request.Amount,
		}
	}

	err = s.disbursementRepo.ApproveRequest(ctx, portsrepo.ApproveRequestParams{
		RequestID:      requestID,
		ApproverID:     approverID,
		ApprovedAt:     now,
		Deduction:      deduction,
		Entry:          entry,
		Lines:          lines,
		BalanceChanges: balanceChanges,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBudget) || errors.Is(err, apperrors.ErrRequestNotPending) {
			logger.Warn("Approval rejected", slog.String("error", err.Error()), slog.String("request_id", requestID))
		} else {
			logger.Error("Failed to execute approval", slog.String("error", err.Error()), slog.String("request_id", requestID))
		}
		return nil, nil, err
	}

	logger.Info("Disbursement request approved",
		slog.String("request_id", requestID),
		slog.String("approver_id", approverID),
		slog.String("journal_id", journalID),
		slog.String("amount", request.Amount.String()),
	)

	request.Status = domain.RequestApproved
	request.DateApproved = &now
	request.ApprovedBy = &approverID
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverID
	entry.Lines = lines

	// Post-commit side effects. Neither may fail the approval.
	s.dispatchPayrollCallback(ctx, request, now)
	s.notifications.Notify(ctx, nil, domain.NotificationSuccess,
		"Disbursement approved",
		fmt.Sprintf("Request %s for %s was approved.", requestID, request.Amount.String()),
	)

	return request, &entry, nil
}

// Reject declines a pending request with a reason. No financial records are written.
func (s *approvalService) Reject(ctx context.Context, requestID string, approverID string, reason string) (*domain.DisbursementRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	request, err := s.disbursementRepo.FindPendingByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.disbursementRepo.RejectRequest(ctx, requestID, approverID, reason, now); err != nil {
		if errors.Is(err, apperrors.ErrRequestNotPending) {
			logger.Warn("Rejection lost the decision race", slog.String("request_id", requestID))
		} else {
			logger.Error("Failed to reject request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		}
		return nil, err
	}

	logger.Info("Disbursement request rejected", slog.String("request_id", requestID), slog.String("approver_id", approverID))

	request.Status = domain.RequestRejected
	request.ApprovedBy = &approverID
	request.RejectionReason = &reason
	request.LastUpdatedAt = now
	request.LastUpdatedBy = approverID

	s.notifications.Notify(ctx, nil, domain.NotificationWarning,
		"Disbursement rejected",
		fmt.Sprintf("Request %s was rejected: %s", requestID, reason),
	)

	return request, nil
}

// dispatchPayrollCallback fires the external payroll callback for approved
// payroll batches. Only requests from the payroll department that carry an
// external batch reference qualify.
func (s *approvalService) dispatchPayrollCallback(ctx context.Context, request *domain.DisbursementRequest, approvedAt time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if request.Department != s.payrollDepartment {
		return
	}
	if request.ExternalReference == nil || *request.ExternalReference == "" {
		return
	}

	err := s.dispatcher.DispatchBatchResult(ctx, portssvc.PayrollDispatchInput{
		BatchReference:   *request.ExternalReference,
		PaymentReference: request.RequestID,
		Beneficiaries:    request.Beneficiaries,
		PaymentDate:      approvedAt,
	})
	if err != nil {
		// The approval already committed; the callback failure is logged only.
		logger.Error("Payroll callback dispatch failed",
			slog.String("request_id", request.RequestID),
			slog.String("batch_reference", *request.ExternalReference),
			slog.String("error", err.Error()),
		)
	}
}
