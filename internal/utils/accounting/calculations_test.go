package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zivabsuite/contable/internal/core/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSignedBalance(t *testing.T) {
	tests := []struct {
		name   string
		nature domain.AccountNature
		debit  string
		credit string
		want   string
	}{
		{"debit-normal with debit excess", domain.DebitNature, "500.00", "120.00", "380"},
		{"debit-normal with credit excess", domain.DebitNature, "100.00", "250.00", "-150"},
		{"credit-normal with credit excess", domain.CreditNature, "50.00", "300.00", "250"},
		{"credit-normal with debit excess", domain.CreditNature, "300.00", "50.00", "-250"},
		{"no activity", domain.DebitNature, "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignedBalance(tt.nature, dec(tt.debit), dec(tt.credit))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := SignedBalance(domain.AccountNature("SIDEWAYS"), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestSplitBalanceColumns(t *testing.T) {
	// A debit-normal account with a positive balance sits in the debit column.
	debitBal, creditBal := SplitBalanceColumns(domain.DebitNature, dec("380"))
	assert.Equal(t, "380", debitBal.String())
	assert.True(t, creditBal.IsZero())

	// A debit-normal account driven negative flips to the credit column.
	debitBal, creditBal = SplitBalanceColumns(domain.DebitNature, dec("-150"))
	assert.True(t, debitBal.IsZero())
	assert.Equal(t, "150", creditBal.String())

	// Credit-normal mirror cases.
	debitBal, creditBal = SplitBalanceColumns(domain.CreditNature, dec("250"))
	assert.True(t, debitBal.IsZero())
	assert.Equal(t, "250", creditBal.String())

	debitBal, creditBal = SplitBalanceColumns(domain.CreditNature, dec("-75.50"))
	assert.Equal(t, "75.5", debitBal.String())
	assert.True(t, creditBal.IsZero())
}

func TestExactlyBalancedVsWithinTolerance(t *testing.T) {
	// One cent off: fails the strict check, passes the reconciliation helper.
	debit := dec("500.00")
	credit := dec("499.99")

	assert.False(t, ExactlyBalanced(debit, credit))
	assert.True(t, WithinTolerance(debit, credit, DefaultReconciliationTolerance))

	// Beyond the tolerance both fail.
	assert.False(t, WithinTolerance(dec("500.00"), dec("499.50"), DefaultReconciliationTolerance))

	// Exact equality passes both.
	assert.True(t, ExactlyBalanced(dec("500.00"), dec("500.00")))
	assert.True(t, WithinTolerance(dec("500.00"), dec("500.00"), DefaultReconciliationTolerance))
}
