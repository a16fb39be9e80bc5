package components

import (
	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/infra/db"
	"bundlemart-api/internal/infra/repository"
	"bundlemart-api/internal/usecase"
	"bundlemart-api/internal/usecase/commands"
	"bundlemart-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.AuthUserRepository)),
			fx.As(new(commands.WalletRepository)),
		),
		fx.Annotate(
			repository.NewDepositRepository,
			fx.As(new(commands.DepositRepository)),
			fx.As(new(queries.DepositReadRepository)),
		),
		fx.Annotate(
			repository.NewBundleRepository,
			fx.As(new(commands.BundleRepository)),
			fx.As(new(queries.BundleReadRepository)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationEnqueuer)),
			fx.As(new(dispatch.JobStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
