package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMovement(t *testing.T, total string, count int) *Movement {
	t.Helper()
	m, err := NewMovement(
		uuid.New(),
		uuid.New(),
		nil,
		money(total),
		count,
		false,
		"Vaccine purchase",
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		uuid.New(),
	)
	require.NoError(t, err)
	return m
}

func TestNewMovement(t *testing.T) {
	t.Run("generates the schedule at creation", func(t *testing.T) {
		m := newTestMovement(t, "1000.00", 3)
		require.Len(t, m.Installments, 3)
		assert.True(t, m.InstallmentsTotal().Equal(m.TotalAmount))
		for _, inst := range m.Installments {
			assert.Equal(t, m.ID, inst.MovementID)
		}
	})

	t.Run("rejects invalid schedule parameters", func(t *testing.T) {
		_, err := NewMovement(uuid.New(), uuid.New(), nil, money("100.00"), 0,
			false, "x", time.Now(), uuid.New())
		var invalid *InvalidInstallmentCountError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("requires farm and category", func(t *testing.T) {
		_, err := NewMovement(uuid.Nil, uuid.New(), nil, money("100.00"), 1,
			false, "x", time.Now(), uuid.New())
		require.Error(t, err)

		_, err = NewMovement(uuid.New(), uuid.Nil, nil, money("100.00"), 1,
			false, "x", time.Now(), uuid.New())
		require.Error(t, err)
	})
}

func TestMovementRegenerate(t *testing.T) {
	t.Run("rebuilds the schedule", func(t *testing.T) {
		m := newTestMovement(t, "1000.00", 3)
		newDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, m.Regenerate(money("600.00"), 2, newDate))

		require.Len(t, m.Installments, 2)
		assert.True(t, m.TotalAmount.Equal(money("600.00")))
		assert.Equal(t, newDate, m.Installments[0].DueDate)
		assert.True(t, m.InstallmentsTotal().Equal(m.TotalAmount))
	})

	t.Run("refuses once any installment is paid", func(t *testing.T) {
		m := newTestMovement(t, "1000.00", 3)
		require.NoError(t, m.Installments[1].Settle(nil, nil))

		err := m.Regenerate(money("600.00"), 2, time.Now())
		require.Error(t, err)
		assert.Len(t, m.Installments, 3)
	})
}

func TestMovementSettlementState(t *testing.T) {
	m := newTestMovement(t, "300.00", 3)

	assert.False(t, m.IsSettled())
	assert.True(t, m.OutstandingTotal().Equal(money("300.00")))

	require.NoError(t, m.Installments[0].Settle(nil, nil))
	assert.False(t, m.IsSettled())
	assert.True(t, m.OutstandingTotal().Equal(money("200.00")))

	require.NoError(t, m.Installments[1].Settle(nil, nil))
	require.NoError(t, m.Installments[2].Settle(nil, nil))
	assert.True(t, m.IsSettled())
	assert.True(t, m.OutstandingTotal().IsZero())
}
