package accounting_test

import (
	"testing"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSignedBalance(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		opening     string
		debit       string
		credit      string
		want        string
	}{
		{"asset grows with debits", domain.Asset, "0", "1000", "200", "800"},
		{"expense grows with debits", domain.Expense, "0", "500", "0", "500"},
		{"liability grows with credits", domain.Liability, "0", "100", "600", "500"},
		{"income grows with credits", domain.Income, "0", "0", "1000", "1000"},
		{"equity grows with credits", domain.Equity, "0", "0", "30000", "30000"},
		{"opening balance included", domain.Asset, "250", "100", "50", "300"},
		{"asset can go negative", domain.Asset, "0", "100", "150", "-50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedBalance(tt.accountType, d(tt.opening), d(tt.debit), d(tt.credit))
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSignedBalanceUnknownType(t *testing.T) {
	_, err := accounting.SignedBalance(domain.AccountType("BOGUS"), decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestSplitSigned(t *testing.T) {
	// Positive asset balance sits in the debit column.
	debit, credit := accounting.SplitSigned(domain.Asset, d("1000"))
	assert.True(t, d("1000").Equal(debit))
	assert.True(t, credit.IsZero())

	// Positive income balance sits in the credit column.
	debit, credit = accounting.SplitSigned(domain.Income, d("1000"))
	assert.True(t, debit.IsZero())
	assert.True(t, d("1000").Equal(credit))

	// Negative asset balance flips to the credit column.
	debit, credit = accounting.SplitSigned(domain.Asset, d("-50"))
	assert.True(t, debit.IsZero())
	assert.True(t, d("50").Equal(credit))

	// Negative liability balance flips to the debit column.
	debit, credit = accounting.SplitSigned(domain.Liability, d("-75"))
	assert.True(t, d("75").Equal(debit))
	assert.True(t, credit.IsZero())
}

func TestLineTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", DebitAmount: d("600"), CreditAmount: decimal.Zero},
		{AccountID: "b", DebitAmount: d("400"), CreditAmount: decimal.Zero},
		{AccountID: "c", DebitAmount: decimal.Zero, CreditAmount: d("1000")},
	}
	totalDebit, totalCredit := accounting.LineTotals(lines)
	assert.True(t, d("1000").Equal(totalDebit))
	assert.True(t, d("1000").Equal(totalCredit))
}

func TestValidateLine(t *testing.T) {
	assert.NoError(t, accounting.ValidateLine(domain.JournalLine{AccountID: "a", DebitAmount: d("10"), CreditAmount: decimal.Zero}))
	assert.NoError(t, accounting.ValidateLine(domain.JournalLine{AccountID: "a", DebitAmount: decimal.Zero, CreditAmount: d("10")}))

	// Both sides set.
	assert.Error(t, accounting.ValidateLine(domain.JournalLine{AccountID: "a", DebitAmount: d("10"), CreditAmount: d("10")}))
	// Neither side set.
	assert.Error(t, accounting.ValidateLine(domain.JournalLine{AccountID: "a", DebitAmount: decimal.Zero, CreditAmount: decimal.Zero}))
	// Negative amount.
	assert.Error(t, accounting.ValidateLine(domain.JournalLine{AccountID: "a", DebitAmount: d("-10"), CreditAmount: decimal.Zero}))
}
