package services

import (
	"context"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
)

// LedgerReaderSvc defines read operations for journal entry data
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its lines.
	GetEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for journal entry data
type LedgerWriterSvc interface {
	// PostEntry validates, balances and persists a new journal entry with its
	// lines, updating account balances atomically.
	PostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
