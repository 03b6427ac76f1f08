package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// CreateJournalLineRequest defines a single line of a journal entry to be created.
// A line must carry a debit, a credit, or both; amounts are non-negative.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit" binding:"dgte0"`
	Credit    decimal.Decimal `json:"credit" binding:"dgte0"`
}

// CreateJournalEntryRequest defines the data needed to post a new journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Description string                     `json:"description"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal entry line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalID    string                `json:"journalID"`
	EntryRef     string                `json:"entryRef"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	CurrencyCode string                `json:"currencyCode"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse defines the paginated response for listing journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalEntryLine to JournalLineResponse DTO.
func ToJournalLineResponse(line *domain.JournalEntryLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:    line.LineID,
		AccountID: line.AccountID,
		Debit:     line.Debit,
		Credit:    line.Credit,
	}
}

// ToJournalLineResponses converts a slice of domain.JournalEntryLine to []JournalLineResponse.
func ToJournalLineResponses(lines []domain.JournalEntryLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToJournalLineResponse(&line)
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		JournalID:    e.JournalID,
		EntryRef:     e.EntryRef,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		CurrencyCode: e.CurrencyCode,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
		Lines:        ToJournalLineResponses(e.Lines),
	}
}
