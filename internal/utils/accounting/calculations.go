package accounting

import (
	"fmt"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the maximum tolerated difference between the debit and
// credit sides of an entry, in base-currency units.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// DebitLine builds a journal line debiting the given role.
func DebitLine(role domain.AccountRole, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{
		Role:        role,
		Debit:       amount,
		Credit:      decimal.Zero,
		Description: description,
	}
}

// CreditLine builds a journal line crediting the given role.
func CreditLine(role domain.AccountRole, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{
		Role:        role,
		Debit:       decimal.Zero,
		Credit:      amount,
		Description: description,
	}
}

// ValidateEntryBalance checks that every line carries a non-negative amount on
// exactly one side and that the entry balances within BalanceEpsilon. Called
// on every constructed entry before it is handed to persistence.
func ValidateEntryBalance(entry *domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return fmt.Errorf("%w: entry %s has fewer than two lines", apperrors.ErrUnbalancedJournal, entry.JournalEntryID)
	}

	for _, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: negative amount on account %s", apperrors.ErrUnbalancedJournal, line.AccountID)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("%w: line on account %s must populate exactly one of debit/credit", apperrors.ErrUnbalancedJournal, line.AccountID)
		}
	}

	diff := entry.TotalDebits().Sub(entry.TotalCredits()).Abs()
	if diff.GreaterThan(BalanceEpsilon) {
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedJournal,
			entry.TotalDebits().String(), entry.TotalCredits().String())
	}
	return nil
}

// MirrorLines swaps the debit and credit side of every line, producing the
// line set of a compensating or return entry.
func MirrorLines(lines []domain.JournalLine) []domain.JournalLine {
	mirrored := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		mirrored[i] = domain.JournalLine{
			AccountID:   line.AccountID,
			Role:        line.Role,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}
	return mirrored
}
