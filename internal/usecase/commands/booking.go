package commands

import (
	"context"
	"errors"
	"strings"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/domain/ledger"
	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/payment"
	"courtdesk/internal/domain/reservation"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/pkg/config"
	"courtdesk/internal/pkg/errs"
	"courtdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Book(ctx context.Context, actor identity.Actor, cmd BookCommand) (*BookingResult, error)
	ApplyPayment(ctx context.Context, actor identity.Actor, cmd ApplyPaymentCommand) (*BookingResult, error)
	Cancel(ctx context.Context, actor identity.Actor, cmd CancelCommand) error
}

type bookingUseCaseImpl struct {
	uow        shared.UnitOfWork
	calculator reservation.PriceCalculator
	cfg        config.BookingConfig
	clock      clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	calculator reservation.PriceCalculator,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:        uow,
		calculator: calculator,
		cfg:        cfg,
		clock:      clock,
	}
}

func (u *bookingUseCaseImpl) Book(ctx context.Context, actor identity.Actor, cmd BookCommand) (*BookingResult, error) {
	if !actor.Can(identity.PermManageReservations) {
		return nil, ErrPermissionDenied
	}

	category := reservation.Category(cmd.Category)
	if !category.IsValid() {
		return nil, errs.Mark(errs.New("unknown category "+cmd.Category), ErrDomainValidation)
	}
	client, err := reservation.NewClient(cmd.ClientName, cmd.ClientDNI, cmd.ClientPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	timeRange, err := reservation.NewTimeRange(cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	total, err := u.calculator.Calculate(category, timeRange)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	now := u.clock.Now()
	actorID := actor.ID
	entity, err := reservation.New(category, cmd.FieldName, client, timeRange, total, &actorID, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var result *BookingResult
	err = u.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		overlapping, err := tx.Reservations().CountOverlapping(ctx, category, timeRange)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if overlapping > 0 {
			return ErrSlotConflict
		}

		if _, err := tx.Reservations().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSlotConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		var outcome *PaymentOutcome
		if cmd.Advance != nil && cmd.Advance.IsPositive() {
			instr := PaymentInstruction{Method: string(payment.KindCash)}
			if cmd.AdvancePayment != nil {
				instr = *cmd.AdvancePayment
			}
			outcome, err = u.settle(ctx, tx, entity, *cmd.Advance, instr, actor)
			if err != nil {
				return err
			}
		}

		result = u.buildResult(entity, outcome)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *bookingUseCaseImpl) ApplyPayment(ctx context.Context, actor identity.Actor, cmd ApplyPaymentCommand) (*BookingResult, error) {
	if !actor.Can(identity.PermCreateSales) {
		return nil, ErrPermissionDenied
	}

	var result *BookingResult
	err := u.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reservations().FindByIDForUpdate(ctx, cmd.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		outcome, err := u.settle(ctx, tx, entity, cmd.Amount, cmd.Payment, actor)
		if err != nil {
			return err
		}

		result = u.buildResult(entity, outcome)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settle applies a payment to a loaded reservation and records the ledger
// rows for the applied portion. The reservation must already be row-locked.
func (u *bookingUseCaseImpl) settle(
	ctx context.Context,
	tx shared.Tx,
	entity *reservation.Reservation,
	amount money.Money,
	instr PaymentInstruction,
	actor identity.Actor,
) (*PaymentOutcome, error) {
	applied, err := entity.ApplyPayment(amount)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrTerminalState):
			return nil, ErrInvalidState
		case errors.Is(err, reservation.ErrAlreadySettled):
			return nil, ErrNothingToPay
		default:
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	alloc, legs, change, err := resolveTender(instr, applied, u.cfg.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	if err := tx.Reservations().Update(ctx, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	origin := ledger.OriginAdvance
	if entity.IsSettled() {
		origin = ledger.OriginSettlement
	}

	reservationID := entity.ID()
	actorID := actor.ID
	ev := ledger.Event{
		Origin:        origin,
		Amount:        applied,
		Breakdown:     legs,
		Kind:          alloc.Kind,
		ReservationID: &reservationID,
		Note:          entity.ServiceLineDescription() + " - " + entity.Client().Name(),
		Items: []ledger.LineItem{
			{
				Description: entity.ServiceLineDescription(),
				Quantity:    money.QuantityFromFloat(1, false),
				UnitPrice:   applied,
			},
		},
	}

	rec, err := ledger.Synthesize(ev, &actorID, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := tx.Ledger().InsertRecord(ctx, rec); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &PaymentOutcome{
		SaleID:  rec.Sale.ID,
		Applied: applied,
		Change:  change,
		Method:  alloc.Kind.String(),
		Summary: alloc.Summary(u.cfg.CurrencySymbol),
	}, nil
}

// resolveTender turns a payment instruction into validated allocation legs
// that conserve the target amount exactly. Reservation payments and product
// sales share it so tenders validate identically on both paths.
func resolveTender(instr PaymentInstruction, amount money.Money, symbol string) (payment.Allocation, []payment.Leg, money.Money, error) {
	if strings.TrimSpace(instr.Method) == "" {
		return payment.Allocation{}, nil, money.Zero(), ErrUnknownInstrument
	}
	kind := payment.ParseKind(instr.Method, instr.CardType, instr.WalletProvider)
	if !kind.IsValid() {
		return payment.Allocation{}, nil, money.Zero(), ErrUnknownInstrument
	}

	cashTendered := amount
	if kind == payment.KindCash && instr.CashTendered != nil {
		cashTendered = *instr.CashTendered
	}

	mixed := payment.MixedTender{
		NonCashKind: payment.ParseKind("card", instr.CardType, instr.WalletProvider),
	}
	if instr.WalletProvider != "" {
		mixed.NonCashKind = payment.ParseKind("wallet", instr.CardType, instr.WalletProvider)
	}
	if instr.MixedCash != nil {
		mixed.Cash = *instr.MixedCash
	}
	if instr.MixedCard != nil {
		mixed.Card = *instr.MixedCard
		mixed.CardSet = true
	}
	if instr.MixedWallet != nil {
		mixed.Wallet = *instr.MixedWallet
		mixed.WalletSet = true
	}

	alloc := payment.Allocate(kind, amount, cashTendered, mixed, symbol)
	if alloc.Status == payment.StatusInsufficient {
		return payment.Allocation{}, nil, money.Zero(), errs.Mark(errs.New(alloc.Message), ErrInsufficientTender)
	}

	change := money.Zero()
	if kind == payment.KindCash {
		change = cashTendered.Sub(amount).ClampNonNegative()
	} else if kind == payment.KindMixed {
		change = payment.BreakdownTotal(alloc.Legs).Sub(amount).ClampNonNegative()
	}

	legs := payment.NormalizeBreakdown(alloc.Legs, amount)
	return alloc, legs, change, nil
}

func (u *bookingUseCaseImpl) Cancel(ctx context.Context, actor identity.Actor, cmd CancelCommand) error {
	if !actor.Can(identity.PermManageReservations) {
		return ErrPermissionDenied
	}

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reservations().FindByIDForUpdate(ctx, cmd.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := entity.Cancel(cmd.Reason); err != nil {
			if errors.Is(err, reservation.ErrTerminalState) {
				return ErrInvalidState
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if u.cfg.ReverseLedgerOnCancel {
			if err := u.reverseLedger(ctx, tx, entity, cmd.Reason, actor.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u *bookingUseCaseImpl) reverseLedger(ctx context.Context, tx shared.Tx, entity *reservation.Reservation, reason string, actorID uuid.UUID) error {
	entries, err := tx.Ledger().CashboxEntriesByReservation(ctx, entity.ID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	now := u.clock.Now()
	for _, entry := range entries {
		if entry.Amount.IsNegative() {
			continue
		}
		rev := ledger.Reversal(entry, reason, &actorID, now)
		if err := tx.Ledger().InsertCashboxEntry(ctx, rev); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (u *bookingUseCaseImpl) buildResult(entity *reservation.Reservation, outcome *PaymentOutcome) *BookingResult {
	return &BookingResult{
		ReservationID: entity.ID(),
		Total:         entity.Total(),
		Paid:          entity.Paid(),
		Balance:       entity.Balance(),
		Status:        entity.Status().String(),
		Payment:       outcome,
	}
}
