package bootstrap

import (
	"courtdesk/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	AuthModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
