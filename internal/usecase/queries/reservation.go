package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReservationFilter struct {
	Status   string
	Category string
	From     *time.Time
	To       *time.Time
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListFirstPage(ctx context.Context, filter ReservationFilter, limit int32) ([]*ReservationListItem, error)
	ListKeyset(ctx context.Context, filter ReservationFilter, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*ReservationListItem
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
