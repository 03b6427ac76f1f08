package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	"github.com/felix-harvey/microfinancial-sub002/internal/models"
)

// ToModelDisbursementRequest converts a domain DisbursementRequest to a model
// row, serializing the beneficiary list to jsonb.
func ToModelDisbursementRequest(d domain.DisbursementRequest) (models.DisbursementRequest, error) {
	var beneficiaries []byte
	if len(d.Beneficiaries) > 0 {
		var err error
		beneficiaries, err = json.Marshal(d.Beneficiaries)
		if err != nil {
			return models.DisbursementRequest{}, fmt.Errorf("failed to marshal beneficiaries for request %s: %w", d.RequestID, err)
		}
	}
	return models.DisbursementRequest{
		DisbursementID:    d.DisbursementID,
		RequestID:         d.RequestID,
		Description:       d.Description,
		Amount:            d.Amount,
		Department:        d.Department,
		BudgetProposalID:  d.BudgetProposalID,
		ExternalReference: d.ExternalReference,
		Beneficiaries:     beneficiaries,
		Status:            models.RequestStatus(d.Status),
		DateRequested:     d.DateRequested,
		DateApproved:      d.DateApproved,
		ApprovedBy:        d.ApprovedBy,
		RejectionReason:   d.RejectionReason,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainDisbursementRequest converts a model row to a domain
// DisbursementRequest, parsing the beneficiary jsonb once here so callers
// never touch the raw payload.
func ToDomainDisbursementRequest(m models.DisbursementRequest) (domain.DisbursementRequest, error) {
	var beneficiaries []domain.BeneficiaryRecord
	if len(m.Beneficiaries) > 0 {
		if err := json.Unmarshal(m.Beneficiaries, &beneficiaries); err != nil {
			return domain.DisbursementRequest{}, fmt.Errorf("failed to unmarshal beneficiaries for request %s: %w", m.RequestID, err)
		}
	}
	return domain.DisbursementRequest{
		DisbursementID:    m.DisbursementID,
		RequestID:         m.RequestID,
		Description:       m.Description,
		Amount:            m.Amount,
		Department:        m.Department,
		BudgetProposalID:  m.BudgetProposalID,
		ExternalReference: m.ExternalReference,
		Beneficiaries:     beneficiaries,
		Status:            domain.RequestStatus(m.Status),
		DateRequested:     m.DateRequested,
		DateApproved:      m.DateApproved,
		ApprovedBy:        m.ApprovedBy,
		RejectionReason:   m.RejectionReason,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainDisbursementRequestSlice converts a slice of model rows to domain requests
func ToDomainDisbursementRequestSlice(ms []models.DisbursementRequest) ([]domain.DisbursementRequest, error) {
	ds := make([]domain.DisbursementRequest, len(ms))
	for i, m := range ms {
		d, err := ToDomainDisbursementRequest(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
