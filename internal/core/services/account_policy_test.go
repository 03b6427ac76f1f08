package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

func TestPolicyTable_ResolveDebitCode(t *testing.T) {
	table := NewPolicyTable(nil)

	tests := []struct {
		name        string
		department  string
		description string
		want        string
	}{
		{
			name:       "payroll department maps to salaries",
			department: "HR Payroll",
			want:       "5002",
		},
		{
			name:        "core budget loan maps to receivable",
			department:  "Core Budget",
			description: "Emergency Loan batch for March",
			want:        "1201",
		},
		{
			name:        "keyword match is case sensitive",
			department:  "Core Budget",
			description: "emergency loan batch for March",
			want:        domain.DefaultDebitAccountCode,
		},
		{
			name:        "core budget without keyword falls through",
			department:  "Core Budget",
			description: "Office supplies",
			want:        domain.DefaultDebitAccountCode,
		},
		{
			name:       "unknown department uses default",
			department: "Facilities",
			want:       domain.DefaultDebitAccountCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.ResolveDebitCode(tt.department, tt.description)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyTable_CustomRules(t *testing.T) {
	table := NewPolicyTable([]domain.PolicyRule{
		{Department: "Field Ops", DebitAccountCode: "5100"},
		{Department: "Field Ops", DescriptionKeyword: "Fuel", DebitAccountCode: "5101"},
	})

	// First matching rule wins even when a later rule is more specific
	assert.Equal(t, "5100", table.ResolveDebitCode("Field Ops", "Fuel advance"))
	assert.Equal(t, domain.DefaultDebitAccountCode, table.ResolveDebitCode("HR Payroll", ""))
	assert.Equal(t, domain.DefaultCreditAccountCode, table.CreditCode())
}
