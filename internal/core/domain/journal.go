package domain

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

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. For a POSTED entry the sum of line debits always equals the
// sum of line credits.
type JournalEntry struct {
	JournalID    string        `json:"journalID"`    // Primary Key (UUID)
	EntryRef     string        `json:"entryRef"`     // Human-readable unique reference, e.g. "JE-..."
	EntryDate    time.Time     `json:"entryDate"`    // Date the event occurred
	Description  string        `json:"description"`  // Nullable user description
	CurrencyCode string        `json:"currencyCode"` // Currency of the entry (Not Null)
	Status       JournalStatus `json:"status"`       // Default: Posted
	AuditFields

	Lines []JournalEntryLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalEntryLine is a single line within a JournalEntry, affecting one
// account. Debit and credit are carried as independent non-negative amounts;
// only the entry-level sum equality is enforced, a line carrying both is
// permitted.
type JournalEntryLine struct {
	LineID    string          `json:"lineID"`    // Primary Key (UUID)
	JournalID string          `json:"journalID"` // FK -> JournalEntry.journalID (Not Null)
	AccountID string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	AuditFields
}
