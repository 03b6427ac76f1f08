package services

import (
	"context"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
)

// BudgetReaderSvc defines read operations for budget proposal data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget proposal by its ID.
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetProposal, error)

	// ListBudgets retrieves a paginated list of budget proposals.
	ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.BudgetProposal, error)
}

// BudgetWriterSvc defines write operations for budget proposal data
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget proposal with the full allocation available.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.BudgetProposal, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
