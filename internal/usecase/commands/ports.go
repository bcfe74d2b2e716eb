package commands

import (
	"time"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPermissionDenied        = errs.New("permission denied")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrSlotConflict            = errs.New("time slot already booked")
	ErrInvalidState            = errs.New("reservation state does not allow this operation")
	ErrUnknownInstrument       = errs.New("unknown payment instrument")
	ErrInsufficientTender      = errs.New("tendered amount does not cover the total")
	ErrNothingToPay            = errs.New("reservation has no open balance")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// PaymentInstruction is how the caller describes one payment: the instrument
// and, depending on it, the tendered cash or the mixed split.
type PaymentInstruction struct {
	Method         string
	CardType       string
	WalletProvider string

	// Cash only: what the client handed over. Change is computed from it.
	CashTendered *money.Money

	// Mixed only: per-bucket amounts. Nil means not entered, which lets the
	// missing non-cash portion auto-fill from the remainder.
	MixedCash   *money.Money
	MixedCard   *money.Money
	MixedWallet *money.Money
}

type BookCommand struct {
	Category    string
	FieldName   string
	ClientName  string
	ClientDNI   string
	ClientPhone string
	StartTime   time.Time
	EndTime     time.Time

	// Advance, when set, is applied immediately after booking.
	Advance        *money.Money
	AdvancePayment *PaymentInstruction
}

type ApplyPaymentCommand struct {
	ReservationID uuid.UUID
	Amount        money.Money
	Payment       PaymentInstruction
}

type CancelCommand struct {
	ReservationID uuid.UUID
	Reason        string
}

type CheckoutItem struct {
	Description   string
	Quantity      float64
	AllowFraction bool
	UnitPrice     money.Money
}

type CheckoutCommand struct {
	Items []CheckoutItem
	Note  string

	// ReservationID, when set, charges the reservation's open balance in the
	// same sale: the header total becomes items plus balance and the sale
	// carries a synthetic service line for the rental.
	ReservationID *uuid.UUID

	Payment PaymentInstruction
}

// PaymentOutcome reports what one payment did: the clamped applied amount,
// the change owed back for cash overpays, and the sale it was recorded under.
type PaymentOutcome struct {
	SaleID  uuid.UUID
	Applied money.Money
	Change  money.Money
	Method  string
	Summary string
}

type BookingResult struct {
	ReservationID uuid.UUID
	Total         money.Money
	Paid          money.Money
	Balance       money.Money
	Status        string
	Payment       *PaymentOutcome
}

// SettledReservation reports what a combined checkout did to the attached
// reservation.
type SettledReservation struct {
	ID      uuid.UUID
	Applied money.Money
	Paid    money.Money
	Balance money.Money
	Status  string
}

type CheckoutResult struct {
	SaleID  uuid.UUID
	Total   money.Money
	Change  money.Money
	Method  string
	Summary string

	// Reservation is set only when the checkout charged a reservation.
	Reservation *SettledReservation
}
