package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zivabsuite/contable/internal/core/domain"
)

func movement(accountID string, debit, credit string) domain.Movement {
	return domain.Movement{
		MovementID: "mov-" + accountID + "-" + debit + "-" + credit,
		AccountID:  accountID,
		Debit:      decimal.RequireFromString(debit),
		Credit:     decimal.RequireFromString(credit),
		IsActive:   true,
	}
}

func draftTransaction(movements ...domain.Movement) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "txn-1",
		CompanyID:     "co-1",
		Folio:         "DIA-000001",
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:          domain.GeneralEntry,
		Memo:          "test entry",
		Status:        domain.Draft,
		IsActive:      true,
		Movements:     movements,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name      string
		movements []domain.Movement
		wantErr   error
	}{
		{
			name: "balanced entry validates",
			movements: []domain.Movement{
				movement("acc-cash", "500.00", "0"),
				movement("acc-revenue", "0", "500.00"),
			},
		},
		{
			name: "unbalanced entry is rejected",
			movements: []domain.Movement{
				movement("acc-cash", "500.00", "0"),
				movement("acc-revenue", "0", "499.99"),
			},
			wantErr: domain.ErrUnbalancedTransaction,
		},
		{
			name: "single movement is rejected",
			movements: []domain.Movement{
				movement("acc-cash", "500.00", "0"),
			},
			wantErr: domain.ErrInsufficientMovements,
		},
		{
			name:      "empty entry is rejected",
			movements: nil,
			wantErr:   domain.ErrInsufficientMovements,
		},
		{
			name: "inactive movements do not count",
			movements: []domain.Movement{
				movement("acc-cash", "500.00", "0"),
				movement("acc-revenue", "0", "500.00"),
				func() domain.Movement {
					m := movement("acc-other", "100.00", "0")
					m.IsActive = false
					return m
				}(),
			},
		},
		{
			name: "many lines balancing across accounts",
			movements: []domain.Movement{
				movement("acc-cash", "300.00", "0"),
				movement("acc-bank", "200.00", "0"),
				movement("acc-revenue", "0", "450.00"),
				movement("acc-vat", "0", "50.00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := draftTransaction(tt.movements...)
			err := txn.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.Draft, txn.Status, "a failed validation must leave the transaction in DRAFT")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Validated, txn.Status)
			assert.True(t, txn.TotalDebit.Equal(txn.TotalCredit))
		})
	}
}

func TestTransaction_StateOrdering(t *testing.T) {
	now := time.Now().UTC()

	t.Run("post requires validated", func(t *testing.T) {
		txn := draftTransaction(
			movement("acc-cash", "200.00", "0"),
			movement("acc-revenue", "0", "200.00"),
		)
		err := txn.Post(now)
		require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		assert.Equal(t, domain.Draft, txn.Status)
		assert.Nil(t, txn.PostedAt)
	})

	t.Run("cancel requires posted", func(t *testing.T) {
		txn := draftTransaction(
			movement("acc-cash", "200.00", "0"),
			movement("acc-revenue", "0", "200.00"),
		)
		require.ErrorIs(t, txn.Cancel(), domain.ErrInvalidStateTransition)

		require.NoError(t, txn.Validate())
		require.ErrorIs(t, txn.Cancel(), domain.ErrInvalidStateTransition)
		assert.Equal(t, domain.Validated, txn.Status)
	})

	t.Run("full lifecycle", func(t *testing.T) {
		txn := draftTransaction(
			movement("acc-cash", "200.00", "0"),
			movement("acc-revenue", "0", "200.00"),
		)
		require.NoError(t, txn.Validate())
		require.NoError(t, txn.Post(now))
		require.NotNil(t, txn.PostedAt)
		assert.Equal(t, now, *txn.PostedAt)
		require.NoError(t, txn.Cancel())
		assert.Equal(t, domain.Cancelled, txn.Status)
	})

	t.Run("no re-validate after posting", func(t *testing.T) {
		txn := draftTransaction(
			movement("acc-cash", "200.00", "0"),
			movement("acc-revenue", "0", "200.00"),
		)
		require.NoError(t, txn.Validate())
		require.NoError(t, txn.Post(now))
		require.ErrorIs(t, txn.Validate(), domain.ErrInvalidStateTransition)
		assert.Equal(t, domain.Posted, txn.Status)
	})
}

func TestTransaction_RecomputeTotalsIdempotent(t *testing.T) {
	txn := draftTransaction(
		movement("acc-cash", "123.45", "0"),
		movement("acc-bank", "76.55", "0"),
		movement("acc-revenue", "0", "200.00"),
	)

	txn.RecomputeTotals()
	firstDebit, firstCredit := txn.TotalDebit, txn.TotalCredit

	txn.RecomputeTotals()
	assert.True(t, txn.TotalDebit.Equal(firstDebit))
	assert.True(t, txn.TotalCredit.Equal(firstCredit))
	assert.Equal(t, "200", txn.TotalDebit.String())
}

func TestTransaction_Editable(t *testing.T) {
	txn := draftTransaction(
		movement("acc-cash", "10.00", "0"),
		movement("acc-revenue", "0", "10.00"),
	)
	assert.True(t, txn.Editable())
	require.NoError(t, txn.Validate())
	assert.False(t, txn.Editable())
}
