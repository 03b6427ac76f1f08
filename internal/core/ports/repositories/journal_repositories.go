package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// FindEntryByRef retrieves a journal entry by its business reference.
	FindEntryByRef(ctx context.Context, entryRef string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry persists a journal entry and its lines, updating account balances
	// within a single database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, balanceChanges map[string]decimal.Decimal) error

	// SaveEntryInTx persists a journal entry and its lines within an existing transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalEntryLine) error
}

// LineReader defines read operations for journal entry line data
type LineReader interface {
	// FindLinesByJournalID retrieves all lines associated with a single journal entry.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntryLine, error)

	// FindLinesByJournalIDs retrieves lines for multiple journal entries, grouped by journal ID.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntryLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
