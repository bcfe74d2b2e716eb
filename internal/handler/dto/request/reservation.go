package request

import (
	"time"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/usecase/commands"
)

// PaymentRequest describes how a payment is tendered. Amount semantics
// depend on Method: cash uses CashTendered for change computation, mixed
// uses the per-bucket amounts, everything else pays the exact target.
type PaymentRequest struct {
	Method         string   `json:"method" binding:"required"`
	CardType       string   `json:"card_type,omitempty"`
	WalletProvider string   `json:"wallet_provider,omitempty"`
	CashTendered   *float64 `json:"cash_tendered,omitempty"`
	MixedCash      *float64 `json:"mixed_cash,omitempty"`
	MixedCard      *float64 `json:"mixed_card,omitempty"`
	MixedWallet    *float64 `json:"mixed_wallet,omitempty"`
}

func (r PaymentRequest) ToInstruction() commands.PaymentInstruction {
	return commands.PaymentInstruction{
		Method:         r.Method,
		CardType:       r.CardType,
		WalletProvider: r.WalletProvider,
		CashTendered:   moneyPtr(r.CashTendered),
		MixedCash:      moneyPtr(r.MixedCash),
		MixedCard:      moneyPtr(r.MixedCard),
		MixedWallet:    moneyPtr(r.MixedWallet),
	}
}

type CreateReservationRequest struct {
	Category    string    `json:"category" binding:"required"`
	FieldName   string    `json:"field_name"`
	ClientName  string    `json:"client_name" binding:"required"`
	ClientDNI   string    `json:"client_dni"`
	ClientPhone string    `json:"client_phone"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`

	Advance *float64        `json:"advance,omitempty"`
	Payment *PaymentRequest `json:"payment,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.BookCommand {
	cmd := commands.BookCommand{
		Category:    r.Category,
		FieldName:   r.FieldName,
		ClientName:  r.ClientName,
		ClientDNI:   r.ClientDNI,
		ClientPhone: r.ClientPhone,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Advance:     moneyPtr(r.Advance),
	}
	if r.Payment != nil {
		instr := r.Payment.ToInstruction()
		cmd.AdvancePayment = &instr
	}
	return cmd
}

type ApplyPaymentRequest struct {
	Amount  float64        `json:"amount" binding:"required"`
	Payment PaymentRequest `json:"payment" binding:"required"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func moneyPtr(v *float64) *money.Money {
	if v == nil {
		return nil
	}
	m := money.FromFloat(*v)
	return &m
}
