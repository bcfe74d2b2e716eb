package components

import (
	"time"

	"courtdesk/internal/domain/money"
	"courtdesk/internal/domain/reservation"
	"courtdesk/internal/pkg/clock"
	"courtdesk/internal/pkg/config"
	"courtdesk/internal/usecase/commands"
	"courtdesk/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	func(cfg config.BookingConfig) *time.Location {
		return cfg.Location()
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewCalendarQueries,
		queries.NewCashboxQueries,
	),
)

func NewPriceCalculator(cfg config.BookingConfig) *reservation.HourlyPriceCalculator {
	return reservation.NewHourlyPriceCalculator(map[reservation.Category]money.Money{
		reservation.CategoryFutbol: money.FromFloat(cfg.FutbolHourlyRate),
		reservation.CategoryVoley:  money.FromFloat(cfg.VoleyHourlyRate),
	})
}
