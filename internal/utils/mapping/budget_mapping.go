package mapping

import (
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	"github.com/felix-harvey/microfinancial-sub002/internal/models"
)

// ToModelBudgetProposal converts a domain BudgetProposal to a model BudgetProposal
func ToModelBudgetProposal(d domain.BudgetProposal) models.BudgetProposal {
	return models.BudgetProposal{
		BudgetID:        d.BudgetID,
		Title:           d.Title,
		AllocatedAmount: d.AllocatedAmount,
		SpentAmount:     d.SpentAmount,
		RemainingAmount: d.RemainingAmount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetProposal converts a model BudgetProposal to a domain BudgetProposal
func ToDomainBudgetProposal(m models.BudgetProposal) domain.BudgetProposal {
	return domain.BudgetProposal{
		BudgetID:        m.BudgetID,
		Title:           m.Title,
		AllocatedAmount: m.AllocatedAmount,
		SpentAmount:     m.SpentAmount,
		RemainingAmount: m.RemainingAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetProposalSlice converts a slice of model BudgetProposals to domain BudgetProposals
func ToDomainBudgetProposalSlice(ms []models.BudgetProposal) []domain.BudgetProposal {
	ds := make([]domain.BudgetProposal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudgetProposal(m)
	}
	return ds
}
