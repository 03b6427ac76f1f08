package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	"github.com/felix-harvey/microfinancial-sub002/internal/core/domain"
)

// SignedDelta computes the balance impact of a single line on its account.
// Debits increase ASSET/EXPENSE balances and decrease the rest; credits do
// the inverse. A line carrying both a debit and a credit nets the two.
func SignedDelta(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// BalanceDeltas aggregates the per-account balance impact of a set of lines.
func BalanceDeltas(lines []domain.JournalEntryLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", line.AccountID)
		}
		delta, err := SignedDelta(line, accountType)
		if err != nil {
			return nil, fmt.Errorf("error calculating signed delta for line %s: %w", line.LineID, err)
		}
		deltas[line.AccountID] = deltas[line.AccountID].Add(delta)
	}
	return deltas, nil
}

// ValidateEntryBalance checks that the lines of a journal entry balance,
// i.e. the sum of debits equals the sum of credits.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrUnbalancedEntry)
	}

	zero := decimal.Zero
	totalDebit := zero
	totalCredit := zero

	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line amounts must be non-negative for line ID %s", apperrors.ErrValidation, line.LineID)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("%w: line must carry a debit or a credit for line ID %s", apperrors.ErrValidation, line.LineID)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits %s do not equal credits %s", apperrors.ErrUnbalancedEntry, totalDebit.String(), totalCredit.String())
	}

	return nil
}
