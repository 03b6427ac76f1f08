package models

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

// Account represents a financial account within the ledger.
type Account struct {
	AccountID    string          `db:"account_id"`
	Code         string          `db:"code"` // Chart-of-accounts code, unique
	Name         string          `db:"name"`
	AccountType  AccountType     `db:"account_type"`
	CurrencyCode string          `db:"currency_code"`
	Description  string          `db:"description"`
	IsActive     bool            `db:"is_active"`
	AuditFields                  // Embed common audit fields
	Balance      decimal.Decimal `db:"balance"` // Persisted account balance
}
