package shared

import (
	"context"

	"courtdesk/internal/domain/ledger"
	"courtdesk/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Read-committed transaction for ordinary writes with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction for booking and payment
	// paths where the overlap and balance checks must not race
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Ledger() LedgerRepository
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// FindByIDForUpdate takes a row lock so concurrent payments against the
	// same reservation serialize
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// CountOverlapping locks and counts active reservations of the category
	// whose range collides with the given one under the half-open rule
	CountOverlapping(ctx context.Context, category reservation.Category, timeRange reservation.TimeRange) (int64, error)
	Update(ctx context.Context, res *reservation.Reservation) error
}

type LedgerRepository interface {
	InsertRecord(ctx context.Context, rec ledger.Record) error
	InsertCashboxEntry(ctx context.Context, entry ledger.CashboxEntry) error
	CashboxEntriesByReservation(ctx context.Context, reservationID uuid.UUID) ([]ledger.CashboxEntry, error)
}
