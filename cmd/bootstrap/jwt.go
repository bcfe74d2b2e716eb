package bootstrap

import (
	"time"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/pkg/config"
	"courtdesk/internal/pkg/jwt"

	"go.uber.org/fx"
)

var AuthModule = fx.Module("auth",
	fx.Provide(
		NewJWTService,
		identity.DefaultGrants,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, tokenDuration)
}
