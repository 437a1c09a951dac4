package components

import (
	"escrow-market/internal/handler"
	"escrow-market/internal/handler/api"
	"escrow-market/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewMarketHandler,
		api.NewProvisionHandler,
		api.NewEventsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
