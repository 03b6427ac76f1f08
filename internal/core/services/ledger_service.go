package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
	portsrepo "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/repositories"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/dto"
	"github.com/felix-harvey/microfinancial-sub002/internal/middleware"
	"github.com/felix-harvey/microfinancial-sub002/internal/utils/accounting"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountInactive  = errors.New("account is inactive")
	ErrEntryMinAccounts = errors.New("journal entry must affect at least two different accounts")
)

// ledgerService provides journal entry posting and retrieval.
type ledgerService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyCode string
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, currencyCode string) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		currencyCode: currencyCode,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// newEntryRef generates a unique business reference for a journal entry.
func newEntryRef(now time.Time) string {
	return fmt.Sprintf("JE-%d", now.UnixNano())
}

// PostEntry validates, balances and persists a new journal entry.
func (s *ledgerService) PostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrUnbalancedEntry)
	}

	accountSet := make(map[string]bool)
	for _, line := range req.Lines {
		accountSet[line.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrEntryMinAccounts
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:    uuid.NewString(),
			JournalID: journalID,
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Double-entry check
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	// Fetch accounts and validate they are usable
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType)
	for id := range accountSet {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, id)
		}
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.BalanceDeltas(lines, accountTypes)
	if err != nil {
		logger.Error("Error calculating balance changes", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	entry := domain.JournalEntry{
		JournalID:    journalID,
		EntryRef:     newEntryRef(now),
		EntryDate:    req.EntryDate,
		Description:  req.Description,
		CurrencyCode: s.currencyCode,
		Status:       domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("journal_id", journalID), slog.String("entry_ref", entry.EntryRef))
	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves a specific journal entry with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal entry %s: %w", journalID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entry)
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   responses,
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
