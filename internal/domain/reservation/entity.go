package reservation

import (
	"errors"
	"strings"
	"time"

	"courtdesk/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrNegativeTotal     = errors.New("total amount cannot be negative")
	ErrZeroTotal         = errors.New("total amount is required")
	ErrNotPositivePay    = errors.New("payment amount must be positive")
	ErrAlreadySettled    = errors.New("reservation is already paid")
	ErrTerminalState     = errors.New("reservation is cancelled or refunded")
	ErrBlankCancelReason = errors.New("cancellation reason is required")
)

// Reservation is one booking of a field for a time range, together with the
// running payment balance. paid never exceeds total at rest: an overpaying
// apply is clamped to the open balance before it is stored.
type Reservation struct {
	id           uuid.UUID
	category     Category
	fieldName    string
	client       Client
	timeRange    TimeRange
	total        money.Money
	paid         money.Money
	status       Status
	cancelReason string
	createdBy    *uuid.UUID
	createdAt    time.Time
}

// New creates a pending reservation. An initial advance may be applied by
// the caller afterwards through ApplyPayment.
func New(category Category, fieldName string, client Client, timeRange TimeRange, total money.Money, createdBy *uuid.UUID, now time.Time) (*Reservation, error) {
	if total.IsNegative() {
		return nil, ErrNegativeTotal
	}
	if total.IsZero() {
		return nil, ErrZeroTotal
	}
	fieldName = strings.TrimSpace(fieldName)
	if fieldName == "" {
		fieldName = "Campo " + category.Label()
	}
	return &Reservation{
		id:        uuid.New(),
		category:  category,
		fieldName: fieldName,
		client:    client,
		timeRange: timeRange,
		total:     total,
		paid:      money.Zero(),
		status:    StatusPending,
		createdBy: createdBy,
		createdAt: now,
	}, nil
}

// Reconstruct rebuilds a reservation from storage without validation.
func Reconstruct(
	id uuid.UUID,
	category Category,
	fieldName string,
	client Client,
	timeRange TimeRange,
	total, paid money.Money,
	status Status,
	cancelReason string,
	createdBy *uuid.UUID,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		category:     category,
		fieldName:    fieldName,
		client:       client,
		timeRange:    timeRange,
		total:        total,
		paid:         paid,
		status:       status,
		cancelReason: cancelReason,
		createdBy:    createdBy,
		createdAt:    createdAt,
	}
}

// Balance is the open amount: max(total - paid, 0).
func (r *Reservation) Balance() money.Money {
	return r.total.Sub(r.paid).ClampNonNegative()
}

// ApplyPayment applies min(amount, balance) to the paid total and recomputes
// the status. It returns the amount actually applied, which is what must be
// ledger-recorded. Paying a terminal reservation or a non-positive amount is
// rejected; so is paying a reservation with no open balance.
func (r *Reservation) ApplyPayment(amount money.Money) (money.Money, error) {
	if r.status.IsTerminal() {
		return money.Zero(), ErrTerminalState
	}
	if !amount.IsPositive() {
		return money.Zero(), ErrNotPositivePay
	}
	balance := r.Balance()
	if !balance.IsPositive() {
		return money.Zero(), ErrAlreadySettled
	}
	applied := money.Min(amount, balance)
	r.paid = r.paid.Add(applied)
	r.recomputeStatus()
	return applied, nil
}

func (r *Reservation) recomputeStatus() {
	if r.paid.Cmp(r.total) >= 0 {
		r.status = StatusPaid
	} else {
		r.status = StatusPending
	}
}

// Cancel marks the reservation cancelled with an audit reason. Cancellation
// is terminal and performs no balance arithmetic; whether previously written
// ledger rows are reversed is a policy decision made by the caller.
func (r *Reservation) Cancel(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrBlankCancelReason
	}
	if r.status.IsTerminal() {
		return ErrTerminalState
	}
	r.status = StatusCancelled
	r.cancelReason = reason
	return nil
}

// IsSettled reports whether the paid total covers the full amount.
func (r *Reservation) IsSettled() bool {
	return r.paid.Cmp(r.total) >= 0
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) Category() Category   { return r.category }
func (r *Reservation) FieldName() string    { return r.fieldName }
func (r *Reservation) Client() Client       { return r.client }
func (r *Reservation) TimeRange() TimeRange { return r.timeRange }
func (r *Reservation) Total() money.Money   { return r.total }
func (r *Reservation) Paid() money.Money    { return r.paid }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CancelReason() string { return r.cancelReason }
func (r *Reservation) CreatedBy() *uuid.UUID { return r.createdBy }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// ServiceLineDescription is the snapshot text used for the synthetic ledger
// line item that represents this booking on a sale.
func (r *Reservation) ServiceLineDescription() string {
	return "Alquiler " + r.fieldName + " (" + r.timeRange.Label() + ")"
}
