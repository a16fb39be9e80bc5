package components

import (
	"context"

	"bundlemart-api/internal/dispatch"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		dispatch.NewDispatcher,
		dispatch.NewWorker,
	),
	fx.Invoke(startWorker),
)

func startWorker(lc fx.Lifecycle, worker *dispatch.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			worker.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			worker.Stop()
			return nil
		},
	})
}
