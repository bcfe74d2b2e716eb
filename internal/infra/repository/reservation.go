package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/reservation"
	"courtdesk/internal/infra"
	"courtdesk/internal/infra/db"
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/usecase/shared"
)

var activeStatuses = []string{
	reservation.StatusPending.String(),
	reservation.StatusPaid.String(),
}

type ReservationRepository struct {
	dbtx   db.DBTX
	clock  clock.Clock
	logger *slog.Logger
}

func NewReservationRepository(dbtx db.DBTX, clock clock.Clock, logger *slog.Logger) shared.ReservationRepository {
	return &ReservationRepository{dbtx: dbtx, clock: clock, logger: logger}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	query, args, err := psql.Insert("reservations").
		Columns(
			"id", "category", "field_name",
			"client_name", "client_dni", "client_phone",
			"start_time", "end_time",
			"total", "paid", "status", "cancel_reason",
			"created_by", "created_at", "updated_at",
		).
		Values(
			res.ID(), res.Category(), res.FieldName(),
			res.Client().Name(), res.Client().DNI(), res.Client().Phone(),
			res.TimeRange().Start(), res.TimeRange().End(),
			res.Total().String(), res.Paid().String(), res.Status().String(), res.CancelReason(),
			res.CreatedBy(), res.CreatedAt(), res.CreatedAt(),
		).
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation insert", err)
	}

	if _, err := r.dbtx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "reservation already exists", err)
			case "23P01":
				// exclusion constraint backstop on overlapping ranges
				return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindConflict, "reservation overlaps an existing booking", err)
			}
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert reservation", err)
	}
	return res.ID(), nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query, args, err := psql.Select(
		"id", "category", "field_name",
		"client_name", "client_dni", "client_phone",
		"start_time", "end_time",
		"total::text", "paid::text", "status", "cancel_reason",
		"created_by", "created_at",
	).
		From("reservations").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation select", err)
	}

	row := r.dbtx.QueryRow(ctx, query, args...)
	entity, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan reservation", err)
	}
	return entity, nil
}

// CountOverlapping locks colliding rows so a concurrent booking of the same
// window serializes behind this transaction.
func (r *ReservationRepository) CountOverlapping(ctx context.Context, category reservation.Category, timeRange reservation.TimeRange) (int64, error) {
	query, args, err := psql.Select("id").
		From("reservations").
		Where(sq.Eq{"category": category}).
		Where(sq.Eq{"status": activeStatuses}).
		Where(sq.Lt{"start_time": timeRange.End()}).
		Where(sq.Gt{"end_time": timeRange.Start()}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build overlap query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate overlapping reservations", err)
	}
	return count, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	query, args, err := psql.Update("reservations").
		Set("paid", res.Paid().String()).
		Set("status", res.Status().String()).
		Set("cancel_reason", res.CancelReason()).
		Set("updated_at", r.clock.Now()).
		Where(sq.Eq{"id": res.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation update", err)
	}

	tag, err := r.dbtx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found for update", nil)
	}
	return nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id                               uuid.UUID
		category, fieldName              string
		clientName, clientDNI, clientPhn string
		startTime, endTime               time.Time
		totalStr, paidStr                string
		status, cancelReason             string
		createdBy                        *uuid.UUID
		createdAt                        time.Time
	)
	err := row.Scan(
		&id, &category, &fieldName,
		&clientName, &clientDNI, &clientPhn,
		&startTime, &endTime,
		&totalStr, &paidStr, &status, &cancelReason,
		&createdBy, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	total, err := money.FromString(totalStr)
	if err != nil {
		return nil, err
	}
	paid, err := money.FromString(paidStr)
	if err != nil {
		return nil, err
	}
	timeRange, err := reservation.NewTimeRange(startTime, endTime)
	if err != nil {
		return nil, err
	}
	client, err := reservation.NewClient(clientName, clientDNI, clientPhn)
	if err != nil {
		return nil, err
	}

	return reservation.Reconstruct(
		id,
		reservation.Category(category),
		fieldName,
		client,
		timeRange,
		total, paid,
		reservation.Status(status),
		cancelReason,
		createdBy,
		createdAt,
	), nil
}
