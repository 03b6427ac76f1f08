package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a ledger account within the core domain.
// Accounts referenced by a posted journal entry are never deleted; they can
// only be deactivated.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	Code         string          `json:"code"`         // Unique chart-of-accounts code, e.g. "1001"
	Name         string          `json:"name"`         // e.g. "Cash on Hand"
	AccountType  AccountType     `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // Single configured currency for the suite
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted running balance
}
