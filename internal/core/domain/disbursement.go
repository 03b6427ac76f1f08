package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a disbursement request. Transitions
// are one-way: PENDING -> APPROVED or PENDING -> REJECTED.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// BeneficiaryRecord identifies one payee on a disbursement request.
type BeneficiaryRecord struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name,omitempty"`
}

// DisbursementRequest is a pending outflow of funds awaiting an
// approve/reject decision.
type DisbursementRequest struct {
	DisbursementID    string              `json:"disbursementID"` // Primary Key (UUID)
	RequestID         string              `json:"requestID"`      // External business identifier (unique)
	Description       string              `json:"description"`
	Amount            decimal.Decimal     `json:"amount"`
	Department        string              `json:"department"`
	BudgetProposalID  *string             `json:"budgetProposalID,omitempty"`  // Nullable FK -> BudgetProposal
	ExternalReference *string             `json:"externalReference,omitempty"` // Payroll batch reference, nullable
	Beneficiaries     []BeneficiaryRecord `json:"beneficiaries,omitempty"`
	Status            RequestStatus       `json:"status"`
	DateRequested     time.Time           `json:"dateRequested"`
	DateApproved      *time.Time          `json:"dateApproved,omitempty"`
	ApprovedBy        *string             `json:"approvedBy,omitempty"` // Decider's user ID, set on approve and reject
	RejectionReason   *string             `json:"rejectionReason,omitempty"`
	AuditFields
}
