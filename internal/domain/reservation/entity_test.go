//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T, total float64) *reservation.Reservation {
	t.Helper()
	client, err := reservation.NewClient("Juan Perez", "12345678", "999888777")
	require.NoError(t, err)
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	tr, err := reservation.NewTimeRange(start, start.Add(2*time.Hour))
	require.NoError(t, err)
	r, err := reservation.New(reservation.CategoryFutbol, "Campo 1", client, tr, money.FromFloat(total), nil, start)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := newTestReservation(t, 120.00)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, reservation.StatusPending, r.Status())
		assert.Equal(t, "0.00", r.Paid().String())
		assert.Equal(t, "120.00", r.Balance().String())
		assert.False(t, r.IsSettled())
	})

	t.Run("blank field name falls back to category", func(t *testing.T) {
		client, err := reservation.NewClient("Ana", "", "")
		require.NoError(t, err)
		start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
		tr, err := reservation.NewTimeRange(start, start.Add(time.Hour))
		require.NoError(t, err)

		r, err := reservation.New(reservation.CategoryVoley, "   ", client, tr, money.FromFloat(40.00), nil, start)
		require.NoError(t, err)
		assert.Equal(t, "Campo Voley", r.FieldName())
	})

	t.Run("zero total rejected", func(t *testing.T) {
		client, err := reservation.NewClient("Ana", "", "")
		require.NoError(t, err)
		start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
		tr, err := reservation.NewTimeRange(start, start.Add(time.Hour))
		require.NoError(t, err)

		_, err = reservation.New(reservation.CategoryFutbol, "Campo 1", client, tr, money.Zero(), nil, start)
		require.ErrorIs(t, err, reservation.ErrZeroTotal)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		client, err := reservation.NewClient("Ana", "", "")
		require.NoError(t, err)
		start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
		tr, err := reservation.NewTimeRange(start, start.Add(time.Hour))
		require.NoError(t, err)

		negative := money.Zero().Sub(money.FromFloat(5.00))
		_, err = reservation.New(reservation.CategoryFutbol, "Campo 1", client, tr, negative, nil, start)
		require.ErrorIs(t, err, reservation.ErrNegativeTotal)
	})
}

func TestApplyPayment(t *testing.T) {
	t.Run("partial advance keeps pending", func(t *testing.T) {
		r := newTestReservation(t, 100.00)

		applied, err := r.ApplyPayment(money.FromFloat(30.00))
		require.NoError(t, err)
		assert.Equal(t, "30.00", applied.String())
		assert.Equal(t, "30.00", r.Paid().String())
		assert.Equal(t, "70.00", r.Balance().String())
		assert.Equal(t, reservation.StatusPending, r.Status())
	})

	t.Run("exact settlement flips to paid", func(t *testing.T) {
		r := newTestReservation(t, 100.00)

		_, err := r.ApplyPayment(money.FromFloat(30.00))
		require.NoError(t, err)
		applied, err := r.ApplyPayment(money.FromFloat(70.00))
		require.NoError(t, err)

		assert.Equal(t, "70.00", applied.String())
		assert.Equal(t, "0.00", r.Balance().String())
		assert.Equal(t, reservation.StatusPaid, r.Status())
		assert.True(t, r.IsSettled())
	})

	t.Run("overpayment clamped to balance", func(t *testing.T) {
		r := newTestReservation(t, 100.00)

		_, err := r.ApplyPayment(money.FromFloat(80.00))
		require.NoError(t, err)
		applied, err := r.ApplyPayment(money.FromFloat(50.00))
		require.NoError(t, err)

		assert.Equal(t, "20.00", applied.String())
		assert.Equal(t, "100.00", r.Paid().String())
		assert.Equal(t, "0.00", r.Balance().String())
		assert.Equal(t, reservation.StatusPaid, r.Status())
	})

	t.Run("settled reservation takes no more payments", func(t *testing.T) {
		r := newTestReservation(t, 50.00)

		_, err := r.ApplyPayment(money.FromFloat(50.00))
		require.NoError(t, err)

		_, err = r.ApplyPayment(money.FromFloat(10.00))
		require.ErrorIs(t, err, reservation.ErrAlreadySettled)
		assert.Equal(t, "50.00", r.Paid().String())
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		r := newTestReservation(t, 50.00)

		_, err := r.ApplyPayment(money.Zero())
		require.ErrorIs(t, err, reservation.ErrNotPositivePay)
	})

	t.Run("cancelled reservation rejects payment", func(t *testing.T) {
		r := newTestReservation(t, 50.00)
		require.NoError(t, r.Cancel("cliente no llega"))

		_, err := r.ApplyPayment(money.FromFloat(10.00))
		require.ErrorIs(t, err, reservation.ErrTerminalState)
	})

	t.Run("paid never exceeds total over many applies", func(t *testing.T) {
		r := newTestReservation(t, 77.77)
		for i := 0; i < 10; i++ {
			_, err := r.ApplyPayment(money.FromFloat(9.99))
			if err != nil {
				require.ErrorIs(t, err, reservation.ErrAlreadySettled)
				break
			}
			assert.True(t, r.Paid().Cmp(r.Total()) <= 0)
		}
		assert.Equal(t, "77.77", r.Paid().String())
	})
}

func TestCancel(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		r := newTestReservation(t, 50.00)
		require.ErrorIs(t, r.Cancel("   "), reservation.ErrBlankCancelReason)
	})

	t.Run("records trimmed reason", func(t *testing.T) {
		r := newTestReservation(t, 50.00)
		require.NoError(t, r.Cancel("  lluvia  "))
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Equal(t, "lluvia", r.CancelReason())
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		r := newTestReservation(t, 50.00)
		require.NoError(t, r.Cancel("lluvia"))
		require.ErrorIs(t, r.Cancel("otra vez"), reservation.ErrTerminalState)
	})

	t.Run("paid reservation can still be cancelled", func(t *testing.T) {
		r := newTestReservation(t, 50.00)
		_, err := r.ApplyPayment(money.FromFloat(50.00))
		require.NoError(t, err)

		require.NoError(t, r.Cancel("reembolso solicitado"))
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Equal(t, "50.00", r.Paid().String())
	})
}

func TestServiceLineDescription(t *testing.T) {
	r := newTestReservation(t, 120.00)
	assert.Equal(t, "Alquiler Campo 1 (2026-03-10 18:00 - 2026-03-10 20:00)", r.ServiceLineDescription())
}

func TestTimeRange(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("end must be after start", func(t *testing.T) {
		_, err := reservation.NewTimeRange(base, base)
		require.ErrorIs(t, err, reservation.ErrInvalidTimeRange)
	})

	t.Run("touching ranges do not overlap", func(t *testing.T) {
		a, err := reservation.NewTimeRange(base, base.Add(time.Hour))
		require.NoError(t, err)
		b, err := reservation.NewTimeRange(base.Add(time.Hour), base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("partial overlap detected", func(t *testing.T) {
		a, err := reservation.NewTimeRange(base, base.Add(2*time.Hour))
		require.NoError(t, err)
		b, err := reservation.NewTimeRange(base.Add(time.Hour), base.Add(3*time.Hour))
		require.NoError(t, err)
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("started hour bills in full", func(t *testing.T) {
		tr, err := reservation.NewTimeRange(base, base.Add(90*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 2, tr.Hours())

		tr, err = reservation.NewTimeRange(base, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, tr.Hours())
	})
}

func TestHourlyPriceCalculator(t *testing.T) {
	calc := reservation.NewHourlyPriceCalculator(map[reservation.Category]money.Money{
		reservation.CategoryFutbol: money.FromFloat(60.00),
		reservation.CategoryVoley:  money.FromFloat(40.00),
	})
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("rate times billable hours", func(t *testing.T) {
		tr, err := reservation.NewTimeRange(base, base.Add(2*time.Hour))
		require.NoError(t, err)
		total, err := calc.Calculate(reservation.CategoryFutbol, tr)
		require.NoError(t, err)
		assert.Equal(t, "120.00", total.String())
	})

	t.Run("partial hour rounds up before pricing", func(t *testing.T) {
		tr, err := reservation.NewTimeRange(base, base.Add(90*time.Minute))
		require.NoError(t, err)
		total, err := calc.Calculate(reservation.CategoryVoley, tr)
		require.NoError(t, err)
		assert.Equal(t, "80.00", total.String())
	})

	t.Run("unrated category rejected", func(t *testing.T) {
		tr, err := reservation.NewTimeRange(base, base.Add(time.Hour))
		require.NoError(t, err)
		_, err = calc.Calculate(reservation.Category("tenis"), tr)
		require.ErrorIs(t, err, reservation.ErrNoRateForCategory)
	})
}
