package accounting

import (
	"fmt"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance computes the conventional signed balance for an account type.
// Debit-normal types (asset, expense) grow with debits; credit-normal types
// (liability, equity, income) grow with credits.
func SignedBalance(accountType domain.AccountType, opening, debitTotal, creditTotal decimal.Decimal) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	if accountType.IsDebitNormal() {
		return opening.Add(debitTotal).Sub(creditTotal), nil
	}
	return opening.Add(creditTotal).Sub(debitTotal), nil
}

// SplitSigned converts a signed balance back into nonnegative debit/credit
// columns for trial balance presentation. A positive signed balance sits on
// the account's normal side.
func SplitSigned(accountType domain.AccountType, signed decimal.Decimal) (debit, credit decimal.Decimal) {
	if accountType.IsDebitNormal() {
		if signed.IsNegative() {
			return decimal.Zero, signed.Neg()
		}
		return signed, decimal.Zero
	}
	if signed.IsNegative() {
		return signed.Neg(), decimal.Zero
	}
	return decimal.Zero, signed
}

// LineTotals sums the debit and credit sides of a set of journal lines.
func LineTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateLine enforces the single-sided line invariant: exactly one of
// debit/credit is positive, the other zero.
func ValidateLine(line domain.JournalLine) error {
	debitSet := line.DebitAmount.IsPositive()
	creditSet := line.CreditAmount.IsPositive()
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return fmt.Errorf("line amounts must not be negative (account %s)", line.AccountID)
	}
	if debitSet == creditSet {
		return fmt.Errorf("exactly one of debit/credit must be positive (account %s)", line.AccountID)
	}
	return nil
}
