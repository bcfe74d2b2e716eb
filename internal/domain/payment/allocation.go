package payment

import (
	"strings"

	"courtdesk/internal/domain/money"
)

// Status is the real-time feedback for an amount tendered against a total.
type Status string

const (
	StatusExact        Status = "exact"
	StatusChangeDue    Status = "change_due"
	StatusInsufficient Status = "insufficient"
)

// Leg is one (instrument, amount) pair of an allocation.
type Leg struct {
	Kind   InstrumentKind
	Amount money.Money
}

// Allocation is the result of resolving a tender against a target total.
// Legs always sum to the rounded total when Status is not insufficient.
type Allocation struct {
	Kind    InstrumentKind
	Legs    []Leg
	Status  Status
	Message string
}

// MixedTender carries the up-to-three component amounts of a mixed payment.
// NonCashKind selects which non-cash instrument absorbs the auto-allocated
// complement.
type MixedTender struct {
	Cash        money.Money
	Card        money.Money
	Wallet      money.Money
	CardSet     bool
	WalletSet   bool
	NonCashKind InstrumentKind
}

// CashFeedback compares a tendered cash amount against the total.
func CashFeedback(tendered, total money.Money, symbol string) (Status, string) {
	if !tendered.IsPositive() {
		return StatusInsufficient, "Ingrese un monto valido."
	}
	diff := tendered.Sub(total)
	switch {
	case diff.IsPositive():
		return StatusChangeDue, "Vuelto " + diff.FormatWith(symbol)
	case diff.IsNegative():
		return StatusInsufficient, "Faltan " + diff.Abs().FormatWith(symbol)
	default:
		return StatusExact, "Monto exacto."
	}
}

// AutoAllocate fills the non-cash leg of a mixed tender with the remainder
// total - cash whenever the operator did not type it explicitly, so only the
// cash received has to be entered by hand.
func (t MixedTender) AutoAllocate(total money.Money) MixedTender {
	remaining := total.Sub(t.Cash).ClampNonNegative()
	out := t
	if t.NonCashKind.isWalletLike() {
		if !t.WalletSet {
			out.Wallet = remaining
			out.Card = money.Zero()
		}
		return out
	}
	if !t.CardSet {
		out.Card = remaining
		out.Wallet = money.Zero()
	}
	return out
}

// Feedback validates the component sum of a mixed tender against the total.
// Overage is reported as change and attributed to the cash leg.
func (t MixedTender) Feedback(total money.Money, symbol string) (Status, string) {
	paid := t.Cash.Add(t.Card).Add(t.Wallet)
	if !paid.IsPositive() {
		return StatusInsufficient, "Ingrese montos para los metodos seleccionados."
	}
	diff := total.Sub(paid)
	if diff.IsPositive() {
		return StatusInsufficient, "Restan " + diff.FormatWith(symbol)
	}
	change := diff.Abs()
	if change.IsPositive() {
		return StatusChangeDue, "Vuelto " + change.FormatWith(symbol)
	}
	complement := t.Card.Add(t.Wallet)
	if complement.IsPositive() && t.Cash.LessThan(total) {
		return StatusExact, "Complemento " + complement.FormatWith(symbol)
	}
	return StatusExact, "Montos completos."
}

// Allocate resolves an instrument kind and tender into allocation legs for a
// target total. Single-instrument kinds place the whole rounded total on one
// leg; cash additionally reports exact/change/insufficient feedback for the
// tendered amount, and mixed tenders are auto-completed then validated.
func Allocate(kind InstrumentKind, total money.Money, cashTendered money.Money, mixed MixedTender, symbol string) Allocation {
	switch kind {
	case KindCash:
		status, msg := CashFeedback(cashTendered, total, symbol)
		return Allocation{
			Kind:    kind,
			Legs:    []Leg{{Kind: KindCash, Amount: total}},
			Status:  status,
			Message: msg,
		}
	case KindMixed:
		tender := mixed.AutoAllocate(total)
		status, msg := tender.Feedback(total, symbol)
		legs := make([]Leg, 0, 3)
		if tender.Cash.IsPositive() {
			legs = append(legs, Leg{Kind: KindCash, Amount: tender.Cash})
		}
		cardKind := tender.NonCashKind
		if !cardKind.isCardLike() {
			cardKind = KindCredit
		}
		if tender.Card.IsPositive() {
			legs = append(legs, Leg{Kind: cardKind, Amount: tender.Card})
		}
		walletKind := tender.NonCashKind
		if !walletKind.isWalletLike() {
			walletKind = KindYape
		}
		if tender.Wallet.IsPositive() {
			legs = append(legs, Leg{Kind: walletKind, Amount: tender.Wallet})
		}
		return Allocation{Kind: kind, Legs: legs, Status: status, Message: msg}
	default:
		return Allocation{
			Kind:    kind,
			Legs:    []Leg{{Kind: kind, Amount: total}},
			Status:  StatusExact,
			Message: kind.Label(),
		}
	}
}

// Summary renders a one-line human-readable description of the legs, used in
// cashbox notes and receipts.
func (a Allocation) Summary(symbol string) string {
	if len(a.Legs) == 0 {
		return a.Kind.Label()
	}
	parts := make([]string, 0, len(a.Legs))
	for _, leg := range a.Legs {
		parts = append(parts, leg.Kind.Label()+" "+leg.Amount.FormatWith(symbol))
	}
	return strings.Join(parts, " / ")
}
