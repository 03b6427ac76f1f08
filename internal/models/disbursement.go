package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a disbursement request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// DisbursementRequest represents a disbursement request row. Beneficiaries is
// the raw jsonb column; parsing happens once at scan time in the repository.
type DisbursementRequest struct {
	DisbursementID    string          `db:"disbursement_id"` // Primary Key (UUID)
	RequestID         string          `db:"request_id"`      // External business identifier, unique
	Description       string          `db:"description"`
	Amount            decimal.Decimal `db:"amount"`
	Department        string          `db:"department"`
	BudgetProposalID  *string         `db:"budget_proposal_id"` // Nullable FK
	ExternalReference *string         `db:"external_reference"` // Nullable
	Beneficiaries     []byte          `db:"beneficiaries"`      // jsonb
	Status            RequestStatus   `db:"status"`
	DateRequested     time.Time       `db:"date_requested"`
	DateApproved      *time.Time      `db:"date_approved"`
	ApprovedBy        *string         `db:"approved_by"`
	RejectionReason   *string         `db:"rejection_reason"`
	AuditFields
}
