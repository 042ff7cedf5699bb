package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

func TestNewExpense(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := NewExpense(ExpenseInput{Reference: "Fuel", Amount: decimal.RequireFromString("80.555")})
		require.NoError(t, err)
		assert.Equal(t, PaymentModeCash, e.PaymentMode)
		assert.Equal(t, PaymentStatusPending, e.PaymentStatus)
		assert.True(t, e.Amount.Equal(decimal.RequireFromString("80.56")))
		assert.False(t, e.Date.IsZero())
	})

	t.Run("enum matching is case-insensitive", func(t *testing.T) {
		e, err := NewExpense(ExpenseInput{PaymentMode: "cheque", PaymentStatus: "PAID"})
		require.NoError(t, err)
		assert.Equal(t, PaymentModeCheque, e.PaymentMode)
		assert.Equal(t, PaymentStatusPaid, e.PaymentStatus)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		_, err := NewExpense(ExpenseInput{Amount: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)

		_, err = NewExpense(ExpenseInput{PaymentMode: "Crypto"})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)

		_, err = NewExpense(ExpenseInput{PaymentStatus: "Refunded"})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}
