package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// SignedBalance applies the account-nature sign convention to raw debit/credit
// sums: debit-normal accounts grow with debits, credit-normal accounts grow
// with credits. Every report uses this single function so the convention
// cannot drift between statements.
func SignedBalance(nature domain.AccountNature, debitSum, creditSum decimal.Decimal) (decimal.Decimal, error) {
	switch nature {
	case domain.DebitNature:
		return debitSum.Sub(creditSum), nil
	case domain.CreditNature:
		return creditSum.Sub(debitSum), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account nature %q", nature)
	}
}

// SignedEffect is the per-movement form of SignedBalance, used when
// accumulating running balances line by line.
func SignedEffect(nature domain.AccountNature, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	return SignedBalance(nature, debit, credit)
}

// SplitBalanceColumns distributes a signed balance into the trial balance's
// debit/credit columns. A positive signed balance lands on the account's
// natural side; a negative one flips to the opposite column as its absolute
// value.
func SplitBalanceColumns(nature domain.AccountNature, signed decimal.Decimal) (debitBalance, creditBalance decimal.Decimal) {
	if nature == domain.DebitNature {
		if signed.IsNegative() {
			return decimal.Zero, signed.Abs()
		}
		return signed, decimal.Zero
	}
	if signed.IsNegative() {
		return signed.Abs(), decimal.Zero
	}
	return decimal.Zero, signed
}

// ExactlyBalanced is the validation invariant: strict decimal equality of the
// debit and credit totals, no tolerance.
func ExactlyBalanced(debitTotal, creditTotal decimal.Decimal) bool {
	return debitTotal.Equal(creditTotal)
}

// WithinTolerance is the reconciliation helper for reviewing legacy or
// imported data, where rounding drift up to the tolerance is acceptable.
// It must never replace ExactlyBalanced in the validate transition.
func WithinTolerance(debitTotal, creditTotal, tolerance decimal.Decimal) bool {
	return debitTotal.Sub(creditTotal).Abs().LessThanOrEqual(tolerance)
}

// DefaultReconciliationTolerance matches the historical import tolerance of one cent.
var DefaultReconciliationTolerance = decimal.RequireFromString("0.01")
