package service

import (
	"log/slog"

	"go.uber.org/fx"
)

var Module = fx.Module(
	"service",

	fx.Provide(
		// Domain services
		fx.Annotate(
			NewRecipientResolver,
			fx.As(new(Resolver)),
		),
		fx.Annotate(
			NewMessageComposer,
			fx.As(new(Composer)),
		),
		fx.Annotate(
			NewEventDispatcher,
			fx.As(new(Dispatcher)),
		),
	),

	// [DECORATION_LAYER] Intercept Resolver to add cross-cutting concerns
	fx.Decorate(func(orig Resolver, logger *slog.Logger) Resolver {
		return &ResolverMiddleware{
			Next:   orig,
			Logger: logger,
		}
	}),
)
