package main

import (
	"context"
	"log/slog"
	"os"

	"panel/config"
	"panel/internal/delivery"
	"panel/internal/delivery/http"
	"panel/internal/delivery/http/middleware"
	"panel/internal/delivery/http/router/handler"
	"panel/internal/delivery/worker"
	"panel/internal/infra/discord"
	logs "panel/internal/infra/log"
	"panel/internal/infra/paypal"
	"panel/internal/infra/persistence/postgres"
	"panel/internal/infra/session"
	"panel/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewSessionRepository,
			postgres.NewEntitlementRepository,
			postgres.NewSettingsRepository,
			postgres.NewPresenceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			discord.NewOAuthService,
			discord.NewBotService,
			paypal.NewClient,
			session.NewCookieService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewGuildService,
			impl.NewSettingsService,
			impl.NewEntitlementService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPageHandler,
			handler.NewSettingsHandler,
			handler.NewPaymentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewSessionSweeper,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches the deliveries from an OnStart hook. Hooks run in
// registration order, so the database ping in the postgres hook has already
// succeeded before any listener accepts a request.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func(d delivery.Delivery) {
					if err := d.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}(d)
			}

			return nil
		},
	})
}
