package readstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"courtdesk/internal/infra"
	"courtdesk/internal/infra/db"
	"courtdesk/internal/usecase/queries"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var reservationViewColumns = []string{
	"id", "category", "field_name",
	"client_name", "client_dni", "client_phone",
	"start_time", "end_time",
	"total::text", "paid::text", "GREATEST(total - paid, 0)::text",
	"status", "cancel_reason",
	"created_by", "created_at", "updated_at",
}

type ReservationReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewReservationReadStore(dbtx db.DBTX, logger *slog.Logger) *ReservationReadStore {
	return &ReservationReadStore{dbtx: dbtx, logger: logger}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query, args, err := psql.Select(reservationViewColumns...).
		From("reservations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation view query", err)
	}

	row := r.dbtx.QueryRow(ctx, query, args...)
	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan reservation view", err)
	}
	return view, nil
}

func (r *ReservationReadStore) ListFirstPage(ctx context.Context, filter queries.ReservationFilter, limit int32) ([]*queries.ReservationListItem, error) {
	builder := r.listBuilder(filter).Limit(uint64(limit))
	return r.runList(ctx, builder)
}

func (r *ReservationReadStore) ListKeyset(ctx context.Context, filter queries.ReservationFilter, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	builder := r.listBuilder(filter).
		Where(sq.Expr("(created_at, id) < (?, ?)", afterCreatedAt, afterID)).
		Limit(uint64(limit))
	return r.runList(ctx, builder)
}

func (r *ReservationReadStore) listBuilder(filter queries.ReservationFilter) sq.SelectBuilder {
	builder := psql.Select(
		"id", "category", "field_name", "client_name",
		"start_time", "end_time",
		"total::text", "paid::text",
		"status", "created_at",
	).
		From("reservations").
		OrderBy("created_at DESC", "id DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.Lt{"start_time": *filter.To})
	}
	return builder
}

func (r *ReservationReadStore) runList(ctx context.Context, builder sq.SelectBuilder) ([]*queries.ReservationListItem, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation list query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query reservations", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		item := &queries.ReservationListItem{}
		if err := rows.Scan(
			&item.ID, &item.Category, &item.FieldName, &item.ClientName,
			&item.StartTime, &item.EndTime,
			&item.Total, &item.Paid,
			&item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan reservation row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate reservation rows", err)
	}
	return items, nil
}

// ListOccupancy returns the active reservations overlapping [from, to) for
// the calendar composition.
func (r *ReservationReadStore) ListOccupancy(ctx context.Context, from, to time.Time, category string) ([]*queries.ReservationOccupancy, error) {
	builder := psql.Select(
		"id", "category", "field_name", "client_name", "status",
		"start_time", "end_time",
	).
		From("reservations").
		Where(sq.Eq{"status": []string{"pending", "paid"}}).
		Where(sq.Lt{"start_time": to}).
		Where(sq.Gt{"end_time": from}).
		OrderBy("start_time ASC")
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build occupancy query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query occupancy", err)
	}
	defer rows.Close()

	occupancy := make([]*queries.ReservationOccupancy, 0)
	for rows.Next() {
		occ := &queries.ReservationOccupancy{}
		if err := rows.Scan(
			&occ.ID, &occ.Category, &occ.FieldName, &occ.ClientName, &occ.Status,
			&occ.StartTime, &occ.EndTime,
		); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan occupancy row", err)
		}
		occupancy = append(occupancy, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate occupancy rows", err)
	}
	return occupancy, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	view := &queries.ReservationView{}
	err := row.Scan(
		&view.ID, &view.Category, &view.FieldName,
		&view.ClientName, &view.ClientDNI, &view.ClientPhone,
		&view.StartTime, &view.EndTime,
		&view.Total, &view.Paid, &view.Balance,
		&view.Status, &view.CancelReason,
		&view.CreatedBy, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}
