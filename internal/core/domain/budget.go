package domain

import (
	"github.com/shopspring/decimal"
)

// BudgetProposal tracks an approved spending allocation. RemainingAmount is
// authoritative for availability checks and never drops below zero.
type BudgetProposal struct {
	BudgetID        string          `json:"budgetID"` // Primary Key (UUID)
	Title           string          `json:"title"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	AuditFields
}

// BudgetDeduction describes a planned consumption of budget, applied
// atomically alongside the write that spends it.
type BudgetDeduction struct {
	BudgetID string
	Amount   decimal.Decimal
}
