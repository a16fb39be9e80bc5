package components

import (
	"bundlemart-api/internal/handler"
	"bundlemart-api/internal/handler/api"
	"bundlemart-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewDepositHandler,
		api.NewBundleHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
