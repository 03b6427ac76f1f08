package services

import (
	"strings"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// PolicyTable resolves which account a disbursement debits, based on the
// request's department and description. Rules are applied in order and the
// first match wins; keyword matching is a case-sensitive substring check.
type PolicyTable struct {
	rules []domain.PolicyRule
}

// NewPolicyTable builds a policy table from the given rules. A nil or empty
// rule set falls back to the built-in rules.
func NewPolicyTable(rules []domain.PolicyRule) *PolicyTable {
	if len(rules) == 0 {
		rules = domain.DefaultPolicyRules()
	}
	return &PolicyTable{rules: rules}
}

// ResolveDebitCode returns the chart-of-accounts code to debit for a request.
func (p *PolicyTable) ResolveDebitCode(department string, description string) string {
	for _, rule := range p.rules {
		if rule.Department != department {
			continue
		}
		if rule.DescriptionKeyword != "" && !strings.Contains(description, rule.DescriptionKeyword) {
			continue
		}
		return rule.DebitAccountCode
	}
	return domain.DefaultDebitAccountCode
}

// CreditCode returns the chart-of-accounts code credited on every disbursement.
func (p *PolicyTable) CreditCode() string {
	return domain.DefaultCreditAccountCode
}
