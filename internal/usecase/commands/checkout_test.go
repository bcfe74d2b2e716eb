//go:build unit

package commands_test

import (
	"context"
	"testing"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/reservation"
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutUseCase(uow *fakeUoW) commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(uow, testBookingConfig(), clock.NewMockClock(fixedNow))
}

func drinksCart() []commands.CheckoutItem {
	return []commands.CheckoutItem{
		{Description: "Agua", Quantity: 2, UnitPrice: money.FromFloat(2.50)},
		{Description: "Gatorade", Quantity: 1, UnitPrice: money.FromFloat(5.00)},
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("cash sale records all rows", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)

		tendered := money.FromFloat(20.00)
		result, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:   drinksCart(),
			Payment: commands.PaymentInstruction{Method: "cash", CashTendered: &tendered},
		})
		require.NoError(t, err)

		assert.Equal(t, "10.00", result.Total.String())
		assert.Equal(t, "10.00", result.Change.String())
		assert.Equal(t, "cash", result.Method)

		require.Len(t, uow.tx.ledger.records, 1)
		rec := uow.tx.ledger.records[0]
		assert.Equal(t, "Venta", rec.Cashbox.Action)
		assert.Nil(t, rec.Sale.ReservationID)
		require.Len(t, rec.Lines, 2)
		assert.Equal(t, "5.00", rec.Lines[0].Subtotal.String())
		require.Len(t, rec.Payments, 1)
		assert.Equal(t, "10.00", rec.Payments[0].Amount.String())
	})

	t.Run("default note lists items with quantities", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)

		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:   drinksCart(),
			Payment: commands.PaymentInstruction{Method: "yape"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Agua x2, Gatorade x1", uow.tx.ledger.records[0].Sale.Note)
	})

	t.Run("explicit note wins", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)

		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:   drinksCart(),
			Note:    "  venta a domicilio  ",
			Payment: commands.PaymentInstruction{Method: "cash"},
		})
		require.NoError(t, err)
		assert.Equal(t, "venta a domicilio", uow.tx.ledger.records[0].Sale.Note)
	})

	t.Run("fractional quantity rounds the subtotal", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)

		result, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items: []commands.CheckoutItem{
				{Description: "Hielo", Quantity: 1.5, AllowFraction: true, UnitPrice: money.FromFloat(3.33)},
			},
			Payment: commands.PaymentInstruction{Method: "cash"},
		})
		require.NoError(t, err)
		assert.Equal(t, "5.00", result.Total.String())
	})

	t.Run("mixed tender conserves the total", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)

		mixedCash := money.FromFloat(4.00)
		result, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items: drinksCart(),
			Payment: commands.PaymentInstruction{
				Method:    "mixed",
				CardType:  "debit",
				MixedCash: &mixedCash,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "10.00", result.Total.String())

		rows := uow.tx.ledger.records[0].Payments
		require.Len(t, rows, 2)
		sum := money.Zero()
		for _, row := range rows {
			sum = sum.Add(row.Amount)
		}
		assert.Equal(t, "10.00", sum.String())
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		uc := newCheckoutUseCase(newFakeUoW())
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Payment: commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrEmptyCart)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		uc := newCheckoutUseCase(newFakeUoW())
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items: []commands.CheckoutItem{
				{Description: "Agua", Quantity: 0, UnitPrice: money.FromFloat(2.50)},
			},
			Payment: commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrInvalidQuantity)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		uc := newCheckoutUseCase(newFakeUoW())
		negative := money.Zero().Sub(money.FromFloat(1.00))
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items: []commands.CheckoutItem{
				{Description: "Agua", Quantity: 1, UnitPrice: negative},
			},
			Payment: commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrInvalidPrice)
	})

	t.Run("blank description rejected", func(t *testing.T) {
		uc := newCheckoutUseCase(newFakeUoW())
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items: []commands.CheckoutItem{
				{Description: "  ", Quantity: 1, UnitPrice: money.FromFloat(2.50)},
			},
			Payment: commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("insufficient mixed tender rejected before persisting", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)

		mixedCash := money.FromFloat(2.00)
		mixedCard := money.FromFloat(3.00)
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items: drinksCart(),
			Payment: commands.PaymentInstruction{
				Method:    "mixed",
				MixedCash: &mixedCash,
				MixedCard: &mixedCard,
			},
		})
		require.ErrorIs(t, err, commands.ErrInsufficientTender)
		assert.Empty(t, uow.tx.ledger.records)
	})

	t.Run("permission denied", func(t *testing.T) {
		uc := newCheckoutUseCase(newFakeUoW())
		_, err := uc.Checkout(ctx, viewerActor(), commands.CheckoutCommand{Items: drinksCart(), Payment: commands.PaymentInstruction{Method: "cash"}})
		require.ErrorIs(t, err, commands.ErrPermissionDenied)
	})
}

func TestCheckoutWithReservation(t *testing.T) {
	ctx := context.Background()

	book := func(t *testing.T, uow *fakeUoW, advance *money.Money) uuid.UUID {
		t.Helper()
		cmd := bookCommand()
		cmd.Advance = advance
		result, err := newBookingUseCase(uow, testBookingConfig()).Book(ctx, operatorActor(), cmd)
		require.NoError(t, err)
		return result.ReservationID
	}

	t.Run("sale total covers items plus the open balance", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)
		advance := money.FromFloat(50.00)
		id := book(t, uow, &advance)

		tendered := money.FromFloat(100.00)
		result, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:         drinksCart(),
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "cash", CashTendered: &tendered},
		})
		require.NoError(t, err)

		assert.Equal(t, "80.00", result.Total.String())
		assert.Equal(t, "20.00", result.Change.String())
		require.NotNil(t, result.Reservation)
		assert.Equal(t, id, result.Reservation.ID)
		assert.Equal(t, "70.00", result.Reservation.Applied.String())
		assert.Equal(t, "120.00", result.Reservation.Paid.String())
		assert.Equal(t, "0.00", result.Reservation.Balance.String())
		assert.Equal(t, "paid", result.Reservation.Status)

		require.Len(t, uow.tx.ledger.records, 2)
		rec := uow.tx.ledger.records[1]
		assert.Equal(t, "Venta", rec.Cashbox.Action)
		assert.Equal(t, "80.00", rec.Sale.Total.String())
		require.NotNil(t, rec.Sale.ReservationID)
		assert.Equal(t, id, *rec.Sale.ReservationID)

		require.Len(t, rec.Lines, 3)
		assert.Equal(t, "Alquiler Campo 1 (2026-03-10 18:00 - 2026-03-10 20:00)", rec.Lines[0].Description)
		assert.Equal(t, "70.00", rec.Lines[0].Subtotal.String())

		require.Len(t, uow.tx.reservations.updated, 1)
		assert.Equal(t, reservation.StatusPaid, uow.tx.reservations.byID[id].Status())
	})

	t.Run("empty cart settles the reservation on its own", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)
		id := book(t, uow, nil)

		result, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "yape"},
		})
		require.NoError(t, err)

		assert.Equal(t, "120.00", result.Total.String())
		require.Len(t, uow.tx.ledger.records, 1)
		rec := uow.tx.ledger.records[0]
		require.Len(t, rec.Lines, 1)
		assert.Equal(t, "120.00", rec.Lines[0].Subtotal.String())
		assert.Equal(t, reservation.StatusPaid, uow.tx.reservations.byID[id].Status())
	})

	t.Run("settled reservation adds nothing to the sale", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)
		advance := money.FromFloat(120.00)
		id := book(t, uow, &advance)

		result, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:         drinksCart(),
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "cash"},
		})
		require.NoError(t, err)

		assert.Equal(t, "10.00", result.Total.String())
		require.NotNil(t, result.Reservation)
		assert.Equal(t, "0.00", result.Reservation.Applied.String())

		rec := uow.tx.ledger.records[1]
		require.Len(t, rec.Lines, 2)
		require.NotNil(t, rec.Sale.ReservationID)
		assert.Empty(t, uow.tx.reservations.updated)
	})

	t.Run("settled reservation with empty cart has nothing to pay", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)
		advance := money.FromFloat(120.00)
		id := book(t, uow, &advance)

		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrNothingToPay)
		assert.Len(t, uow.tx.ledger.records, 1)
	})

	t.Run("cancelled reservation rejected", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)
		id := book(t, uow, nil)

		booking := newBookingUseCase(uow, testBookingConfig())
		require.NoError(t, booking.Cancel(ctx, operatorActor(), commands.CancelCommand{ReservationID: id, Reason: "lluvia"}))

		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:         drinksCart(),
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrInvalidState)
		assert.Empty(t, uow.tx.ledger.records)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		uc := newCheckoutUseCase(newFakeUoW())
		id := uuid.New()
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:         drinksCart(),
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "cash"},
		})
		require.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("insufficient tender leaves the reservation pending", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newCheckoutUseCase(uow)
		id := book(t, uow, nil)

		tendered := money.FromFloat(100.00)
		_, err := uc.Checkout(ctx, operatorActor(), commands.CheckoutCommand{
			Items:         drinksCart(),
			ReservationID: &id,
			Payment:       commands.PaymentInstruction{Method: "cash", CashTendered: &tendered},
		})
		require.ErrorIs(t, err, commands.ErrInsufficientTender)
		assert.Empty(t, uow.tx.ledger.records)
		assert.Empty(t, uow.tx.reservations.updated)
		assert.Equal(t, reservation.StatusPending, uow.tx.reservations.byID[id].Status())
		assert.Equal(t, "120.00", uow.tx.reservations.byID[id].Balance().String())
	})
}
