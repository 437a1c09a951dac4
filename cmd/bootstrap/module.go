package bootstrap

import (
	"escrow-market/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	JWTModule,
	EventLogModule,
	components.InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
	fx.Invoke(SeedAdmin),
)
