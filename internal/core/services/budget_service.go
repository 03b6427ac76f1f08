package services

import (
	"context"
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

// budgetService provides budget proposal operations.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget persists a new budget proposal with the full allocation available.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.BudgetProposal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AllocatedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: allocated amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	budget := domain.BudgetProposal{
		BudgetID:        uuid.NewString(),
		Title:           req.Title,
		AllocatedAmount: req.AllocatedAmount,
		SpentAmount:     decimal.Zero,
		RemainingAmount: req.AllocatedAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget proposal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save budget proposal: %w", err)
	}

	logger.Info("Budget proposal created", slog.String("budget_id", budget.BudgetID), slog.String("allocated", budget.AllocatedAmount.String()))
	return &budget, nil
}

// GetBudgetByID retrieves a specific budget proposal by its ID.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetProposal, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	return budget, nil
}

// ListBudgets retrieves a paginated list of budget proposals.
func (s *budgetService) ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.BudgetProposal, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	budgets, err := s.budgetRepo.ListBudgets(ctx, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}
