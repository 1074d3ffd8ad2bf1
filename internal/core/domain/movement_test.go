package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zivabsuite/contable/internal/core/domain"
)

func TestMovement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		debit   string
		credit  string
		wantErr bool
	}{
		{name: "debit only", debit: "100.00", credit: "0"},
		{name: "credit only", debit: "0", credit: "100.00"},
		{name: "both sides set", debit: "100.00", credit: "100.00", wantErr: true},
		{name: "neither side set", debit: "0", credit: "0", wantErr: true},
		{name: "negative debit", debit: "-5.00", credit: "0", wantErr: true},
		{name: "negative credit", debit: "0", credit: "-5.00", wantErr: true},
		{name: "fractional cents", debit: "0.01", credit: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.Movement{
				MovementID: "mov-1",
				AccountID:  "acc-1",
				Debit:      decimal.RequireFromString(tt.debit),
				Credit:     decimal.RequireFromString(tt.credit),
				IsActive:   true,
			}
			err := m.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidMovement)
				return
			}
			require.NoError(t, err)
			// Exclusivity holds for every movement that validates.
			assert.True(t, m.Debit.IsPositive() != m.Credit.IsPositive())
		})
	}
}

func TestMovement_SideAndAmount(t *testing.T) {
	debit := domain.Movement{Debit: decimal.RequireFromString("45.50"), Credit: decimal.Zero}
	assert.Equal(t, domain.DebitSide, debit.Side())
	assert.Equal(t, "45.5", debit.Amount().String())

	credit := domain.Movement{Debit: decimal.Zero, Credit: decimal.RequireFromString("12.25")}
	assert.Equal(t, domain.CreditSide, credit.Side())
	assert.Equal(t, "12.25", credit.Amount().String())
}
