package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"courtdesk/internal/domain/ledger"
	"courtdesk/internal/domain/money"
	"courtdesk/internal/infra"
	"courtdesk/internal/infra/db"
	"courtdesk/internal/usecase/shared"
)

type LedgerRepository struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewLedgerRepository(dbtx db.DBTX, logger *slog.Logger) shared.LedgerRepository {
	return &LedgerRepository{dbtx: dbtx, logger: logger}
}

// InsertRecord writes every row of a synthesized record. It must run inside
// a transaction so the sale, its lines, its payments, and the cashbox entry
// land atomically.
func (r *LedgerRepository) InsertRecord(ctx context.Context, rec ledger.Record) error {
	if err := r.insertSale(ctx, rec.Sale); err != nil {
		return err
	}
	for _, line := range rec.Lines {
		if err := r.insertSaleLine(ctx, line); err != nil {
			return err
		}
	}
	for _, p := range rec.Payments {
		if err := r.insertPayment(ctx, p); err != nil {
			return err
		}
	}
	return r.InsertCashboxEntry(ctx, rec.Cashbox)
}

func (r *LedgerRepository) insertSale(ctx context.Context, sale ledger.SaleHeader) error {
	query, args, err := psql.Insert("sales").
		Columns("id", "total", "method", "reservation_id", "note", "created_by", "created_at").
		Values(sale.ID, sale.Total.String(), sale.Kind.String(), sale.ReservationID, sale.Note, sale.CreatedBy, sale.CreatedAt).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build sale insert", err)
	}
	if _, err := r.dbtx.Exec(ctx, query, args...); err != nil {
		return r.wrapExecErr("failed to insert sale", err)
	}
	return nil
}

func (r *LedgerRepository) insertSaleLine(ctx context.Context, line ledger.SaleLine) error {
	query, args, err := psql.Insert("sale_lines").
		Columns("id", "sale_id", "description", "quantity", "unit_price", "subtotal").
		Values(line.ID, line.SaleID, line.Description, line.Quantity.Decimal().String(), line.UnitPrice.String(), line.Subtotal.String()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build sale line insert", err)
	}
	if _, err := r.dbtx.Exec(ctx, query, args...); err != nil {
		return r.wrapExecErr("failed to insert sale line", err)
	}
	return nil
}

func (r *LedgerRepository) insertPayment(ctx context.Context, p ledger.PaymentRow) error {
	query, args, err := psql.Insert("sale_payments").
		Columns("id", "sale_id", "method", "amount").
		Values(p.ID, p.SaleID, p.Kind.String(), p.Amount.String()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build sale payment insert", err)
	}
	if _, err := r.dbtx.Exec(ctx, query, args...); err != nil {
		return r.wrapExecErr("failed to insert sale payment", err)
	}
	return nil
}

func (r *LedgerRepository) InsertCashboxEntry(ctx context.Context, entry ledger.CashboxEntry) error {
	query, args, err := psql.Insert("cashbox_logs").
		Columns("id", "action", "amount", "note", "sale_id", "reservation_id", "created_by", "created_at").
		Values(entry.ID, entry.Action, entry.Amount.String(), entry.Note, entry.SaleID, entry.ReservationID, entry.CreatedBy, entry.CreatedAt).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build cashbox insert", err)
	}
	if _, err := r.dbtx.Exec(ctx, query, args...); err != nil {
		return r.wrapExecErr("failed to insert cashbox entry", err)
	}
	return nil
}

func (r *LedgerRepository) CashboxEntriesByReservation(ctx context.Context, reservationID uuid.UUID) ([]ledger.CashboxEntry, error) {
	query, args, err := psql.Select(
		"id", "action", "amount::text", "note", "sale_id", "reservation_id", "created_by", "created_at",
	).
		From("cashbox_logs").
		Where(sq.Eq{"reservation_id": reservationID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build cashbox select", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query cashbox entries", err)
	}
	defer rows.Close()

	var entries []ledger.CashboxEntry
	for rows.Next() {
		var (
			entry     ledger.CashboxEntry
			amountStr string
			createdAt time.Time
		)
		if err := rows.Scan(
			&entry.ID, &entry.Action, &amountStr, &entry.Note,
			&entry.SaleID, &entry.ReservationID, &entry.CreatedBy, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan cashbox entry", err)
		}
		amount, err := money.FromString(amountStr)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to parse cashbox amount", err)
		}
		entry.Amount = amount
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate cashbox entries", err)
	}
	return entries, nil
}

func (r *LedgerRepository) wrapExecErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, msg, err)
		case "23503":
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
}
