package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// JournalEntry represents a single, balanced financial event composed of multiple lines.
type JournalEntry struct {
	JournalID    string        `db:"journal_id"` // Primary Key (UUID)
	EntryRef     string        `db:"entry_ref"`  // Unique business reference
	EntryDate    time.Time     `db:"entry_date"` // Date the event occurred
	Description  string        `db:"description"`
	CurrencyCode string        `db:"currency_code"`
	Status       JournalStatus `db:"status"`
	AuditFields
}

// JournalEntryLine represents a single line item within a JournalEntry, affecting one account.
type JournalEntryLine struct {
	LineID    string          `db:"line_id"`    // Primary Key (UUID)
	JournalID string          `db:"journal_id"` // FK -> JournalEntry.journalID (Not Null)
	AccountID string          `db:"account_id"` // FK -> Account.accountID (Not Null)
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	AuditFields
}
