package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstallment(t *testing.T) *Installment {
	t.Helper()
	inst, err := NewInstallment(
		uuid.New(),
		1,
		money("250.00"),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return inst
}

func TestNewInstallment(t *testing.T) {
	t.Run("starts pending with zero paid", func(t *testing.T) {
		inst := newTestInstallment(t)
		assert.Equal(t, PaymentStatusPending, inst.Status)
		assert.True(t, inst.AmountPaid.IsZero())
		assert.Nil(t, inst.SettledDate)
		assert.False(t, inst.IsPaid())
	})

	t.Run("rejects empty movement", func(t *testing.T) {
		_, err := NewInstallment(uuid.Nil, 1, money("10.00"), time.Now())
		require.Error(t, err)
	})

	t.Run("rejects sequence below one", func(t *testing.T) {
		_, err := NewInstallment(uuid.New(), 0, money("10.00"), time.Now())
		require.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewInstallment(uuid.New(), 1, money("-10.00"), time.Now())
		var invalid *InvalidAmountError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("accepts a zero amount", func(t *testing.T) {
		inst, err := NewInstallment(uuid.New(), 1, money("0"), time.Now())
		require.NoError(t, err)
		assert.True(t, inst.AmountDue.IsZero())
	})
}

func TestInstallmentSettle(t *testing.T) {
	t.Run("defaults to full amount due and today", func(t *testing.T) {
		inst := newTestInstallment(t)
		require.NoError(t, inst.Settle(nil, nil))

		assert.True(t, inst.IsPaid())
		assert.True(t, inst.AmountPaid.Equal(inst.AmountDue))
		require.NotNil(t, inst.SettledDate)
		assert.WithinDuration(t, time.Now(), *inst.SettledDate, time.Minute)
	})

	t.Run("accepts explicit amount and date", func(t *testing.T) {
		inst := newTestInstallment(t)
		paid := decimal.RequireFromString("200.00")
		date := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		require.NoError(t, inst.Settle(&paid, &date))

		assert.True(t, inst.AmountPaid.Amount().Equal(paid))
		require.NotNil(t, inst.SettledDate)
		assert.Equal(t, date, *inst.SettledDate)
	})

	t.Run("re-settling with the same amount is a no-op", func(t *testing.T) {
		inst := newTestInstallment(t)
		first := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		require.NoError(t, inst.Settle(nil, &first))
		require.NoError(t, inst.Settle(nil, nil))

		require.NotNil(t, inst.SettledDate)
		assert.Equal(t, first, *inst.SettledDate)
	})

	t.Run("rejects non-positive paid amount", func(t *testing.T) {
		inst := newTestInstallment(t)
		for _, raw := range []string{"0", "-5.00"} {
			paid := decimal.RequireFromString(raw)
			err := inst.Settle(&paid, nil)
			var invalid *InvalidAmountError
			require.ErrorAs(t, err, &invalid)
		}
		assert.False(t, inst.IsPaid())
	})
}

func TestInstallmentReopen(t *testing.T) {
	inst := newTestInstallment(t)
	require.NoError(t, inst.Settle(nil, nil))
	require.True(t, inst.IsPaid())

	inst.Reopen()

	assert.Equal(t, PaymentStatusPending, inst.Status)
	assert.True(t, inst.AmountPaid.IsZero())
	assert.Nil(t, inst.SettledDate)
}

func TestInstallmentIsOverdue(t *testing.T) {
	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	inst, err := NewInstallment(uuid.New(), 1, money("100.00"), due)
	require.NoError(t, err)

	t.Run("not overdue on the due date", func(t *testing.T) {
		assert.False(t, inst.IsOverdue(time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)))
	})

	t.Run("overdue the day after", func(t *testing.T) {
		assert.True(t, inst.IsOverdue(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("paid installments are never overdue", func(t *testing.T) {
		require.NoError(t, inst.Settle(nil, nil))
		assert.False(t, inst.IsOverdue(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}
