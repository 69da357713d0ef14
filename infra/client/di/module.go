package clientdi

import (
	"context"

	"go.uber.org/fx"

	"github.com/nabrah/usage-alert-service/infra/client/openmeter"
	"github.com/nabrah/usage-alert-service/infra/client/resend"
	"github.com/nabrah/usage-alert-service/internal/service"
)

var Module = fx.Module(
	"clients",

	// [CONSTRUCTOR] Provides the outbound collaborators
	fx.Provide(
		openmeter.New,
		resend.New,
		func(c *openmeter.Client) service.Directory { return c },
		func(c *resend.Client) service.Sender { return c },
	),

	// [LIFECYCLE] Ensures pooled connections are released on app shutdown
	fx.Invoke(func(lc fx.Lifecycle, client *openmeter.Client) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
	}),

	fx.Invoke(func(lc fx.Lifecycle, client *resend.Client) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
	}),
)
