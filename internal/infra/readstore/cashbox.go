package readstore

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"courtdesk/internal/infra"
	"courtdesk/internal/infra/db"
	"courtdesk/internal/usecase/queries"
)

type CashboxReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewCashboxReadStore(dbtx db.DBTX, logger *slog.Logger) *CashboxReadStore {
	return &CashboxReadStore{dbtx: dbtx, logger: logger}
}

func (r *CashboxReadStore) ListFirstPage(ctx context.Context, filter queries.CashboxFilter, limit int32) ([]*queries.CashboxEntryView, error) {
	builder := r.listBuilder(filter).Limit(uint64(limit))
	return r.runList(ctx, builder)
}

func (r *CashboxReadStore) ListKeyset(ctx context.Context, filter queries.CashboxFilter, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*queries.CashboxEntryView, error) {
	builder := r.listBuilder(filter).
		Where(sq.Expr("(created_at, id) < (?, ?)", afterCreatedAt, afterID)).
		Limit(uint64(limit))
	return r.runList(ctx, builder)
}

func (r *CashboxReadStore) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*queries.CashboxEntryView, error) {
	builder := psql.Select(cashboxColumns...).
		From("cashbox_logs").
		Where(sq.Eq{"reservation_id": reservationID}).
		OrderBy("created_at ASC", "id ASC")
	return r.runList(ctx, builder)
}

var cashboxColumns = []string{
	"id", "action", "amount::text", "note",
	"sale_id", "reservation_id", "created_by", "created_at",
}

func (r *CashboxReadStore) listBuilder(filter queries.CashboxFilter) sq.SelectBuilder {
	builder := psql.Select(cashboxColumns...).
		From("cashbox_logs").
		OrderBy("created_at DESC", "id DESC")

	if filter.Action != "" {
		builder = builder.Where(sq.Eq{"action": filter.Action})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.Lt{"created_at": *filter.To})
	}
	return builder
}

func (r *CashboxReadStore) runList(ctx context.Context, builder sq.SelectBuilder) ([]*queries.CashboxEntryView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build cashbox list query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query cashbox entries", err)
	}
	defer rows.Close()

	entries := make([]*queries.CashboxEntryView, 0)
	for rows.Next() {
		entry := &queries.CashboxEntryView{}
		if err := rows.Scan(
			&entry.ID, &entry.Action, &entry.Amount, &entry.Note,
			&entry.SaleID, &entry.ReservationID, &entry.CreatedBy, &entry.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan cashbox row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate cashbox rows", err)
	}
	return entries, nil
}
