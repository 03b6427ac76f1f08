package models

import (
	"github.com/shopspring/decimal"
)

// BudgetProposal represents a spending allocation row. The remaining_amount
// column carries a CHECK (remaining_amount >= 0) constraint.
type BudgetProposal struct {
	BudgetID        string          `db:"budget_id"` // Primary Key (UUID)
	Title           string          `db:"title"`
	AllocatedAmount decimal.Decimal `db:"allocated_amount"`
	SpentAmount     decimal.Decimal `db:"spent_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	AuditFields
}
