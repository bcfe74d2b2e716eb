package components

import (
	"courtdesk/internal/infra/readstore"
	"courtdesk/internal/infra/uow"
	"courtdesk/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Reservation read side
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
			fx.As(new(queries.OccupancyRepo)),
		),
		// Cashbox read side
		fx.Annotate(
			readstore.NewCashboxReadStore,
			fx.As(new(queries.CashboxViewRepo)),
		),
	),
)
