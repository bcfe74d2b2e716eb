package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CashboxFilter struct {
	From   *time.Time
	To     *time.Time
	Action string
}

type CashboxQueries interface {
	Activity(ctx context.Context, filter CashboxFilter, after *Cursor, limit int) ([]*CashboxEntryView, *Cursor, error)
	ByReservation(ctx context.Context, reservationID uuid.UUID) ([]*CashboxEntryView, error)
}

type CashboxViewRepo interface {
	ListFirstPage(ctx context.Context, filter CashboxFilter, limit int32) ([]*CashboxEntryView, error)
	ListKeyset(ctx context.Context, filter CashboxFilter, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*CashboxEntryView, error)
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*CashboxEntryView, error)
}

type cashboxQueriesImpl struct {
	repo CashboxViewRepo
}

func NewCashboxQueries(repo CashboxViewRepo) CashboxQueries {
	return &cashboxQueriesImpl{repo: repo}
}

func (q *cashboxQueriesImpl) Activity(ctx context.Context, filter CashboxFilter, after *Cursor, limit int) ([]*CashboxEntryView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*CashboxEntryView
	var err error
	if after != nil && after.After != "" {
		afterCreatedAt, afterID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.repo.ListKeyset(ctx, filter, afterCreatedAt, afterID, int32(limit))
	} else {
		rows, err = q.repo.ListFirstPage(ctx, filter, int32(limit))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return rows, next, nil
}

func (q *cashboxQueriesImpl) ByReservation(ctx context.Context, reservationID uuid.UUID) ([]*CashboxEntryView, error) {
	return q.repo.ListByReservation(ctx, reservationID)
}
