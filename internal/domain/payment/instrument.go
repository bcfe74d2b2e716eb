// Package payment turns "charge this total with that instrument" into an
// auditable list of (instrument, amount) legs whose sum always equals the
// rounded total.
package payment

import "strings"

// InstrumentKind is the closed set of payment instruments the cashbox
// understands. Free-text method labels from configuration are resolved into
// one of these before any allocation logic runs.
type InstrumentKind string

const (
	KindCash     InstrumentKind = "cash"
	KindDebit    InstrumentKind = "debit"
	KindCredit   InstrumentKind = "credit"
	KindYape     InstrumentKind = "yape"
	KindPlin     InstrumentKind = "plin"
	KindTransfer InstrumentKind = "transfer"
	KindMixed    InstrumentKind = "mixed"
	KindOther    InstrumentKind = "other"
)

func (k InstrumentKind) String() string { return string(k) }

func (k InstrumentKind) IsValid() bool {
	switch k {
	case KindCash, KindDebit, KindCredit, KindYape, KindPlin, KindTransfer, KindMixed, KindOther:
		return true
	default:
		return false
	}
}

// displayLabels is the single mapping table from instrument kind to the
// label stored on payment rows and receipts.
var displayLabels = map[InstrumentKind]string{
	KindCash:     "Efectivo",
	KindDebit:    "Tarjeta de Débito",
	KindCredit:   "Tarjeta de Crédito",
	KindYape:     "Billetera Digital (Yape)",
	KindPlin:     "Billetera Digital (Plin)",
	KindTransfer: "Transferencia Bancaria",
	KindMixed:    "Pago Mixto",
	KindOther:    "Otros",
}

func (k InstrumentKind) Label() string {
	if label, ok := displayLabels[k]; ok {
		return label
	}
	return displayLabels[KindOther]
}

// ParseKind resolves a configured method kind into the closed enum. The
// legacy generic kinds "card" and "wallet" need a hint (card type or wallet
// provider) to land on a concrete instrument.
func ParseKind(raw, cardType, walletProvider string) InstrumentKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash":
		return KindCash
	case "debit":
		return KindDebit
	case "credit":
		return KindCredit
	case "yape":
		return KindYape
	case "plin":
		return KindPlin
	case "transfer":
		return KindTransfer
	case "mixed":
		return KindMixed
	case "card":
		return cardKind(cardType)
	case "wallet":
		return walletKind(walletProvider)
	default:
		return KindOther
	}
}

func cardKind(cardType string) InstrumentKind {
	if strings.Contains(strings.ToLower(cardType), "deb") {
		return KindDebit
	}
	return KindCredit
}

func walletKind(provider string) InstrumentKind {
	if strings.Contains(strings.ToLower(provider), "plin") {
		return KindPlin
	}
	return KindYape
}

func (k InstrumentKind) isCardLike() bool {
	return k == KindDebit || k == KindCredit || k == KindTransfer
}

func (k InstrumentKind) isWalletLike() bool {
	return k == KindYape || k == KindPlin
}
