package domain

// PolicyRule maps a request's department (and optionally a keyword in its
// description) to the expense or receivable account that should be debited
// when the request is approved. Rules are evaluated in order; the first match
// wins.
type PolicyRule struct {
	Department         string `json:"department"`
	DescriptionKeyword string `json:"descriptionKeyword,omitempty"`
	DebitAccountCode   string `json:"debitAccountCode"`
}

const (
	// DefaultDebitAccountCode is charged when no policy rule matches.
	DefaultDebitAccountCode = "5001"
	// DefaultCreditAccountCode is the cash account credited on every
	// disbursement.
	DefaultCreditAccountCode = "1001"
)

// DefaultPolicyRules returns the built-in posting policy used when no rules
// are configured.
func DefaultPolicyRules() []PolicyRule {
	return []PolicyRule{
		{Department: "HR Payroll", DebitAccountCode: "5002"},
		{Department: "Core Budget", DescriptionKeyword: "Loan", DebitAccountCode: "1201"},
	}
}
