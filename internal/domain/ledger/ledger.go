package ledger

import (
	"errors"
	"fmt"
	"time"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/payment"

	"github.com/google/uuid"
)

var (
	ErrNoAmount         = errors.New("ledger event amount must be positive")
	ErrEmptyBreakdown   = errors.New("ledger event requires at least one payment leg")
	ErrBreakdownDrift   = errors.New("payment legs do not sum to the event amount")
	ErrNoLineItems      = errors.New("product sale requires at least one line item")
	ErrUnknownOrigin    = errors.New("unknown ledger event origin")
)

// Origin classifies why money moved.
type Origin string

const (
	OriginAdvance     Origin = "advance"
	OriginSettlement  Origin = "settlement"
	OriginProductSale Origin = "product_sale"
)

// ActionLabel is the human audit label written to the cashbox log.
func (o Origin) ActionLabel() string {
	switch o {
	case OriginAdvance:
		return "Adelanto"
	case OriginSettlement:
		return "Reserva"
	case OriginProductSale:
		return "Venta"
	default:
		return string(o)
	}
}

func (o Origin) IsValid() bool {
	switch o {
	case OriginAdvance, OriginSettlement, OriginProductSale:
		return true
	}
	return false
}

// LineItem is one sellable unit snapshot on a sale.
type LineItem struct {
	Description string
	Quantity    money.Quantity
	UnitPrice   money.Money
}

func (li LineItem) Subtotal() money.Money {
	return li.Quantity.Subtotal(li.UnitPrice)
}

// Event is the input to ledger synthesis: one money movement with its
// normalized payment breakdown and the line items it pays for.
type Event struct {
	Origin        Origin
	Amount        money.Money
	Breakdown     []payment.Leg
	Kind          payment.InstrumentKind
	Items         []LineItem
	ReservationID *uuid.UUID
	Note          string
}

// SaleHeader is the persistent sale record.
type SaleHeader struct {
	ID            uuid.UUID
	Total         money.Money
	Kind          payment.InstrumentKind
	ReservationID *uuid.UUID
	Note          string
	CreatedBy     *uuid.UUID
	CreatedAt     time.Time
}

// SaleLine is one snapshot row of a sale.
type SaleLine struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	Description string
	Quantity    money.Quantity
	UnitPrice   money.Money
	Subtotal    money.Money
}

// PaymentRow is one instrument leg of a sale's payment.
type PaymentRow struct {
	ID     uuid.UUID
	SaleID uuid.UUID
	Kind   payment.InstrumentKind
	Amount money.Money
}

// CashboxEntry is the audit trail row for a money movement.
type CashboxEntry struct {
	ID            uuid.UUID
	Action        string
	Amount        money.Money
	Note          string
	SaleID        *uuid.UUID
	ReservationID *uuid.UUID
	CreatedBy     *uuid.UUID
	CreatedAt     time.Time
}

// Record is the fully synthesized output of one event: a sale header, its
// lines, one payment row per breakdown leg, and the cashbox entry. The caller
// persists all of it in a single transaction.
type Record struct {
	Sale     SaleHeader
	Lines    []SaleLine
	Payments []PaymentRow
	Cashbox  CashboxEntry
}

// Synthesize validates an event and expands it into the rows to persist.
// The breakdown must already be normalized and conserve the amount exactly.
func Synthesize(ev Event, createdBy *uuid.UUID, now time.Time) (Record, error) {
	if !ev.Origin.IsValid() {
		return Record{}, ErrUnknownOrigin
	}
	if !ev.Amount.IsPositive() {
		return Record{}, ErrNoAmount
	}
	if len(ev.Breakdown) == 0 {
		return Record{}, ErrEmptyBreakdown
	}
	if payment.BreakdownTotal(ev.Breakdown).Cmp(ev.Amount) != 0 {
		return Record{}, ErrBreakdownDrift
	}
	if ev.Origin == OriginProductSale && len(ev.Items) == 0 {
		return Record{}, ErrNoLineItems
	}

	saleID := uuid.New()
	sale := SaleHeader{
		ID:            saleID,
		Total:         ev.Amount,
		Kind:          ev.Kind,
		ReservationID: ev.ReservationID,
		Note:          ev.Note,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}

	lines := make([]SaleLine, 0, len(ev.Items))
	for _, item := range ev.Items {
		lines = append(lines, SaleLine{
			ID:          uuid.New(),
			SaleID:      saleID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}

	payments := make([]PaymentRow, 0, len(ev.Breakdown))
	for _, leg := range ev.Breakdown {
		payments = append(payments, PaymentRow{
			ID:     uuid.New(),
			SaleID: saleID,
			Kind:   leg.Kind,
			Amount: leg.Amount,
		})
	}

	entry := CashboxEntry{
		ID:            uuid.New(),
		Action:        ev.Origin.ActionLabel(),
		Amount:        ev.Amount,
		Note:          BuildNote(saleID, ev.Note),
		SaleID:        &saleID,
		ReservationID: ev.ReservationID,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}

	return Record{Sale: sale, Lines: lines, Payments: payments, Cashbox: entry}, nil
}

// BuildNote prefixes the cashbox note with the sale reference.
func BuildNote(saleID uuid.UUID, summary string) string {
	if summary == "" {
		return fmt.Sprintf("#%s", shortID(saleID))
	}
	return fmt.Sprintf("#%s: %s", shortID(saleID), summary)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// Reversal produces the compensating cashbox entry for a cancelled
// reservation's prior movements. It is only used when reversal-on-cancel is
// enabled in configuration.
func Reversal(orig CashboxEntry, reason string, createdBy *uuid.UUID, now time.Time) CashboxEntry {
	note := "Anulación " + orig.Note
	if reason != "" {
		note += " (" + reason + ")"
	}
	return CashboxEntry{
		ID:            uuid.New(),
		Action:        "Anulación",
		Amount:        orig.Amount.MulInt(-1),
		Note:          note,
		SaleID:        orig.SaleID,
		ReservationID: orig.ReservationID,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
}
