package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"vesselwatch/internal/bootstrap"
	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/usecase/analytics"
)

// withApp builds only the config and database; init-db needs nothing else.
func withApp(run func(cmd *cobra.Command, app *bootstrap.App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var app *bootstrap.App
		return runFx(cmd, []any{&app}, func() error {
			return run(cmd, app)
		})
	}
}

// withCatalog also builds the cache, the analytics service and the router.
func withCatalog(run func(cmd *cobra.Command, args []string, app *bootstrap.App, svc *analytics.Service, router http.Handler) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var app *bootstrap.App
		var svc *analytics.Service
		var router http.Handler
		return runFx(cmd, []any{&app, &svc, &router}, func() error {
			return run(cmd, args, app, svc, router)
		})
	}
}

func runFx(cmd *cobra.Command, targets []any, run func() error) error {
	ctx := logging.WithAttrs(
		cmd.Context(),
		slog.String("command", cmd.CommandPath()),
		slog.String("config_file", cfgFile),
	)

	fxApp := fx.New(
		bootstrap.Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		fx.Provide(
			fx.Annotate(
				func() string { return cfgFile },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Populate(targets...),
	)

	startCtx, cancelStart := context.WithTimeout(ctx, 10*time.Second)
	defer cancelStart()
	if err := fxApp.Start(startCtx); err != nil {
		logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
		return errs.Wrap(err, "start fx application")
	}

	defer func() {
		stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelStop()
		if err := fxApp.Stop(stopCtx); err != nil {
			logging.Error(ctx, "fx application stop failed", slog.Any("err", errs.Loggable(err)))
		}
	}()

	if err := run(); err != nil {
		return errs.Wrap(err, "run command")
	}
	return nil
}
