package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a new budget proposal.
type CreateBudgetRequest struct {
	Title           string          `json:"title" binding:"required"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" binding:"required,dgt0"`
}

// BudgetResponse defines the data returned for a budget proposal.
type BudgetResponse struct {
	BudgetID        string          `json:"budgetID"`
	Title           string          `json:"title"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListBudgetsParams defines query parameters for listing budget proposals.
type ListBudgetsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToBudgetResponse converts a domain.BudgetProposal to BudgetResponse DTO
func ToBudgetResponse(b *domain.BudgetProposal) BudgetResponse {
	return BudgetResponse{
		BudgetID:        b.BudgetID,
		Title:           b.Title,
		AllocatedAmount: b.AllocatedAmount,
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.RemainingAmount,
		CreatedAt:       b.CreatedAt,
		CreatedBy:       b.CreatedBy,
	}
}

// ToListBudgetResponse converts a slice of domain.BudgetProposal to a slice of BudgetResponse DTOs
func ToListBudgetResponse(budgets []domain.BudgetProposal) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}
