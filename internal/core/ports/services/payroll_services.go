package services

import (
	"context"
	"time"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// PayrollDispatchInput carries the data needed to report a settled payroll
// batch back to the external payroll system.
type PayrollDispatchInput struct {
	BatchReference string
	// PaymentReference is the disbursement request id the batch settled under.
	PaymentReference string
	Beneficiaries    []domain.BeneficiaryRecord
	PaymentDate      time.Time
}

// PayrollDispatcherSvc reports approved payroll disbursements to the external
// payroll system. Implementations decide delivery semantics; the production
// dispatcher delivers asynchronously after the approval has committed.
type PayrollDispatcherSvc interface {
	// DispatchBatchResult submits the batch result callback. An empty
	// beneficiary list is skipped, not an error.
	DispatchBatchResult(ctx context.Context, input PayrollDispatchInput) error
}
