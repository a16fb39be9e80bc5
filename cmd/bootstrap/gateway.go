package bootstrap

import (
	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/infra/gateway"
	"bundlemart-api/internal/pkg/config"
	"bundlemart-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *gateway.MomoClient {
				return gateway.NewMomoClient(cfg.Momo)
			},
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			func(cfg config.Config) *gateway.SMSClient {
				return gateway.NewSMSClient(cfg.SMS, nil)
			},
			fx.As(new(dispatch.Sender)),
		),
	),
)
