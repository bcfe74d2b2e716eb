package commands

import (
	"context"
	"errors"
	"strings"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/domain/ledger"
	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/reservation"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/pkg/config"
	"courtdesk/internal/pkg/errs"
	"courtdesk/internal/usecase/shared"
)

var (
	ErrEmptyCart       = errs.New("checkout requires at least one item")
	ErrInvalidQuantity = errs.New("item quantity must be positive")
	ErrInvalidPrice    = errs.New("item price cannot be negative")
)

type CheckoutCommands interface {
	Checkout(ctx context.Context, actor identity.Actor, cmd CheckoutCommand) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow   shared.UnitOfWork
	cfg   config.BookingConfig
	clock clock.Clock
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	cfg config.BookingConfig,
	clock clock.Clock,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:   uow,
		cfg:   cfg,
		clock: clock,
	}
}

func (u *checkoutUseCaseImpl) Checkout(ctx context.Context, actor identity.Actor, cmd CheckoutCommand) (*CheckoutResult, error) {
	if !actor.Can(identity.PermCreateSales) {
		return nil, ErrPermissionDenied
	}
	if len(cmd.Items) == 0 && cmd.ReservationID == nil {
		return nil, ErrEmptyCart
	}

	cart, itemsTotal, err := buildCart(cmd.Items)
	if err != nil {
		return nil, err
	}

	if cmd.ReservationID == nil {
		return u.sellDirect(ctx, actor, cmd, cart, itemsTotal)
	}
	return u.sellWithReservation(ctx, actor, cmd, cart, itemsTotal)
}

// sellDirect records a plain product sale with no reservation attached.
func (u *checkoutUseCaseImpl) sellDirect(
	ctx context.Context,
	actor identity.Actor,
	cmd CheckoutCommand,
	cart []ledger.LineItem,
	total money.Money,
) (*CheckoutResult, error) {
	if !total.IsPositive() {
		return nil, errs.Mark(errs.New("sale total must be positive"), ErrDomainValidation)
	}

	alloc, breakdown, change, err := resolveTender(cmd.Payment, total, u.cfg.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	actorID := actor.ID
	ev := ledger.Event{
		Origin:    ledger.OriginProductSale,
		Amount:    total,
		Breakdown: breakdown,
		Kind:      alloc.Kind,
		Items:     cart,
		Note:      u.buildNote(cmd, cart),
	}

	rec, err := ledger.Synthesize(ev, &actorID, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Ledger().InsertRecord(ctx, rec); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		SaleID:  rec.Sale.ID,
		Total:   total,
		Change:  change,
		Method:  alloc.Kind.String(),
		Summary: alloc.Summary(u.cfg.CurrencySymbol),
	}, nil
}

// sellWithReservation charges the reservation's open balance together with
// the cart in one sale. The reservation is row-locked, its balance applied
// via the entity, and the header total is cart plus balance; the sale gets a
// leading synthetic service line for the rental. Everything lands in one
// serializable transaction so the balance cannot be charged twice.
func (u *checkoutUseCaseImpl) sellWithReservation(
	ctx context.Context,
	actor identity.Actor,
	cmd CheckoutCommand,
	cart []ledger.LineItem,
	itemsTotal money.Money,
) (*CheckoutResult, error) {
	actorID := actor.ID
	var result *CheckoutResult

	err := u.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reservations().FindByIDForUpdate(ctx, *cmd.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if entity.Status().IsTerminal() {
			return ErrInvalidState
		}

		balance := entity.Balance()
		if !balance.IsPositive() && len(cart) == 0 {
			return ErrNothingToPay
		}

		total := itemsTotal.Add(balance)
		alloc, breakdown, change, err := resolveTender(cmd.Payment, total, u.cfg.CurrencySymbol)
		if err != nil {
			return err
		}

		items := cart
		applied := money.Zero()
		if balance.IsPositive() {
			applied, err = entity.ApplyPayment(balance)
			if err != nil {
				if errors.Is(err, reservation.ErrTerminalState) {
					return ErrInvalidState
				}
				return errs.Mark(err, ErrDomainValidation)
			}
			serviceLine := ledger.LineItem{
				Description: entity.ServiceLineDescription(),
				Quantity:    money.QuantityFromFloat(1, false),
				UnitPrice:   applied,
			}
			items = append([]ledger.LineItem{serviceLine}, cart...)

			if err := tx.Reservations().Update(ctx, entity); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		reservationID := entity.ID()
		ev := ledger.Event{
			Origin:        ledger.OriginProductSale,
			Amount:        total,
			Breakdown:     breakdown,
			Kind:          alloc.Kind,
			Items:         items,
			ReservationID: &reservationID,
			Note:          u.buildNote(cmd, items),
		}

		rec, err := ledger.Synthesize(ev, &actorID, u.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Ledger().InsertRecord(ctx, rec); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &CheckoutResult{
			SaleID:  rec.Sale.ID,
			Total:   total,
			Change:  change,
			Method:  alloc.Kind.String(),
			Summary: alloc.Summary(u.cfg.CurrencySymbol),
			Reservation: &SettledReservation{
				ID:      reservationID,
				Applied: applied,
				Paid:    entity.Paid(),
				Balance: entity.Balance(),
				Status:  entity.Status().String(),
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func buildCart(items []CheckoutItem) ([]ledger.LineItem, money.Money, error) {
	cart := make([]ledger.LineItem, 0, len(items))
	total := money.Zero()
	for _, it := range items {
		if strings.TrimSpace(it.Description) == "" {
			return nil, money.Zero(), errs.Mark(errs.New("item description is required"), ErrDomainValidation)
		}
		qty := money.QuantityFromFloat(it.Quantity, it.AllowFraction)
		if !qty.IsPositive() {
			return nil, money.Zero(), ErrInvalidQuantity
		}
		if it.UnitPrice.IsNegative() {
			return nil, money.Zero(), ErrInvalidPrice
		}
		item := ledger.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
		}
		cart = append(cart, item)
		total = total.Add(item.Subtotal())
	}
	return cart, total, nil
}

func (u *checkoutUseCaseImpl) buildNote(cmd CheckoutCommand, items []ledger.LineItem) string {
	if strings.TrimSpace(cmd.Note) != "" {
		return strings.TrimSpace(cmd.Note)
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Description+" x"+it.Quantity.Display())
	}
	return strings.Join(parts, ", ")
}
