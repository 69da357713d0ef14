package cmd

import (
	"go.uber.org/fx"

	"github.com/nabrah/usage-alert-service/config"
	clientdi "github.com/nabrah/usage-alert-service/infra/client/di"
	"github.com/nabrah/usage-alert-service/internal/handler/webhook"
	"github.com/nabrah/usage-alert-service/internal/service"
)

func NewApp(cfg *config.Config, loader *config.Loader) *fx.App {
	return fx.New(
		fx.Provide(
			func() *config.Config { return cfg },
			func() *config.Loader { return loader },
			ProvideLogger,
		),
		fx.Invoke(WatchLogLevel),
		clientdi.Module,
		service.Module,
		webhook.Module,
	)
}
