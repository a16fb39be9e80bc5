package components

import (
	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/pkg/clock"
	"bundlemart-api/internal/usecase"
	"bundlemart-api/internal/usecase/commands"
	"bundlemart-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	usecase.NewAuthUseCase,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDepositUseCase,
		commands.NewBundleUseCase,
		func(d *dispatch.Dispatcher) commands.Dispatcher { return d },
		commands.NewDispatchUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDepositQueries,
		queries.NewBundleQueries,
	),
)
