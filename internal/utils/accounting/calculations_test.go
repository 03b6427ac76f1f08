package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalEntryLine
		accountType domain.AccountType
		want        decimal.Decimal
		wantErr     bool
	}{
		{
			name:        "debit to expense increases balance",
			line:        domain.JournalEntryLine{AccountID: "acc-1", Debit: decimal.NewFromInt(100)},
			accountType: domain.Expense,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "credit to asset decreases balance",
			line:        domain.JournalEntryLine{AccountID: "acc-2", Credit: decimal.NewFromInt(100)},
			accountType: domain.Asset,
			want:        decimal.NewFromInt(-100),
		},
		{
			name:        "credit to liability increases balance",
			line:        domain.JournalEntryLine{AccountID: "acc-3", Credit: decimal.NewFromInt(50)},
			accountType: domain.Liability,
			want:        decimal.NewFromInt(50),
		},
		{
			name:        "debit to revenue decreases balance",
			line:        domain.JournalEntryLine{AccountID: "acc-4", Debit: decimal.NewFromInt(50)},
			accountType: domain.Revenue,
			want:        decimal.NewFromInt(-50),
		},
		{
			name:        "line with both columns nets out",
			line:        domain.JournalEntryLine{AccountID: "acc-5", Debit: decimal.NewFromInt(80), Credit: decimal.NewFromInt(30)},
			accountType: domain.Expense,
			want:        decimal.NewFromInt(50),
		},
		{
			name:        "unknown account type",
			line:        domain.JournalEntryLine{AccountID: "acc-6", Debit: decimal.NewFromInt(10)},
			accountType: domain.AccountType("BOGUS"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignedDelta(tt.line, tt.accountType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %s got %s", tt.want, got)
		})
	}
}

func TestBalanceDeltas(t *testing.T) {
	lines := []domain.JournalEntryLine{
		{LineID: "l1", AccountID: "expense-acc", Debit: decimal.NewFromInt(500)},
		{LineID: "l2", AccountID: "cash-acc", Credit: decimal.NewFromInt(500)},
	}
	accountTypes := map[string]domain.AccountType{
		"expense-acc": domain.Expense,
		"cash-acc":    domain.Asset,
	}

	deltas, err := BalanceDeltas(lines, accountTypes)
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(deltas["expense-acc"]))
	assert.True(t, decimal.NewFromInt(-500).Equal(deltas["cash-acc"]))

	// Missing account type is an error
	_, err = BalanceDeltas(lines, map[string]domain.AccountType{"expense-acc": domain.Expense})
	assert.Error(t, err)
}

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalEntryLine
		wantErr error
	}{
		{
			name: "balanced entry",
			lines: []domain.JournalEntryLine{
				{LineID: "l1", Debit: decimal.NewFromInt(100)},
				{LineID: "l2", Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "unbalanced entry",
			lines: []domain.JournalEntryLine{
				{LineID: "l1", Debit: decimal.NewFromInt(100)},
				{LineID: "l2", Credit: decimal.NewFromInt(90)},
			},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name: "single line",
			lines: []domain.JournalEntryLine{
				{LineID: "l1", Debit: decimal.NewFromInt(100)},
			},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name: "negative amount",
			lines: []domain.JournalEntryLine{
				{LineID: "l1", Debit: decimal.NewFromInt(-100)},
				{LineID: "l2", Credit: decimal.NewFromInt(-100)},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "all-zero line",
			lines: []domain.JournalEntryLine{
				{LineID: "l1", Debit: decimal.NewFromInt(100)},
				{LineID: "l2"},
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryBalance(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
