package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// BeneficiaryRequest defines a single payee on a disbursement request.
type BeneficiaryRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name"`
}

// CreateDisbursementRequest defines the data needed to file a new disbursement request.
type CreateDisbursementRequest struct {
	RequestID         string               `json:"requestID" binding:"required"`
	Description       string               `json:"description" binding:"required"`
	Amount            decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Department        string               `json:"department" binding:"required"`
	BudgetProposalID  *string              `json:"budgetProposalID"`  // Optional, nil means no budget tracking
	ExternalReference *string              `json:"externalReference"` // Optional payroll batch reference
	Beneficiaries     []BeneficiaryRequest `json:"beneficiaries" binding:"omitempty,dive"`
}

// RejectDisbursementRequest defines the payload for rejecting a request.
type RejectDisbursementRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DisbursementResponse defines the data returned for a disbursement request.
type DisbursementResponse struct {
	DisbursementID    string               `json:"disbursementID"`
	RequestID         string               `json:"requestID"`
	Description       string               `json:"description"`
	Amount            decimal.Decimal      `json:"amount"`
	Department        string               `json:"department"`
	BudgetProposalID  *string              `json:"budgetProposalID,omitempty"`
	ExternalReference *string              `json:"externalReference,omitempty"`
	Beneficiaries     []BeneficiaryRequest `json:"beneficiaries,omitempty"`
	Status            string               `json:"status"`
	DateRequested     time.Time            `json:"dateRequested"`
	DateApproved      *time.Time           `json:"dateApproved,omitempty"`
	ApprovedBy        *string              `json:"approvedBy,omitempty"`
	RejectionReason   *string              `json:"rejectionReason,omitempty"`
}

// ApprovalResponse defines the data returned after a successful approval,
// including the journal entry the approval posted.
type ApprovalResponse struct {
	RequestID    string    `json:"requestID"`
	Status       string    `json:"status"`
	DateApproved time.Time `json:"dateApproved"`
	ApprovedBy   string    `json:"approvedBy"`
	JournalID    string    `json:"journalID"`
	EntryRef     string    `json:"entryRef"`
}

// ListDisbursementsParams defines query parameters for listing disbursement requests.
type ListDisbursementsParams struct {
	Status *string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Limit  int     `form:"limit,default=20"`
	Offset int     `form:"offset,default=0"`
}

// ToDisbursementResponse converts a domain.DisbursementRequest to DisbursementResponse DTO
func ToDisbursementResponse(r *domain.DisbursementRequest) DisbursementResponse {
	beneficiaries := make([]BeneficiaryRequest, len(r.Beneficiaries))
	for i, b := range r.Beneficiaries {
		beneficiaries[i] = BeneficiaryRequest{EmployeeID: b.EmployeeID, Name: b.Name}
	}
	return DisbursementResponse{
		DisbursementID:    r.DisbursementID,
		RequestID:         r.RequestID,
		Description:       r.Description,
		Amount:            r.Amount,
		Department:        r.Department,
		BudgetProposalID:  r.BudgetProposalID,
		ExternalReference: r.ExternalReference,
		Beneficiaries:     beneficiaries,
		Status:            string(r.Status),
		DateRequested:     r.DateRequested,
		DateApproved:      r.DateApproved,
		ApprovedBy:        r.ApprovedBy,
		RejectionReason:   r.RejectionReason,
	}
}

// ToListDisbursementResponse converts a slice of domain.DisbursementRequest to DTOs
func ToListDisbursementResponse(requests []domain.DisbursementRequest) []DisbursementResponse {
	res := make([]DisbursementResponse, len(requests))
	for i, r := range requests {
		res[i] = ToDisbursementResponse(&r)
	}
	return res
}
