package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vesselwatch/internal/bootstrap"
	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/usecase/analytics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics HTTP API",
	RunE: withCatalog(func(cmd *cobra.Command, _ []string, app *bootstrap.App, _ *analytics.Service, router http.Handler) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serverCfg := app.Config.Server
		ctx = logging.WithAttrs(ctx, slog.String("addr", serverCfg.Addr))

		srv := &http.Server{
			Addr:         serverCfg.Addr,
			Handler:      router,
			ReadTimeout:  serverCfg.ReadTimeout,
			WriteTimeout: serverCfg.WriteTimeout,
			BaseContext:  func(net.Listener) context.Context { return ctx },
		}

		serveErr := make(chan error, 1)
		go func() {
			logging.Info(ctx, "http server listening")
			serveErr <- srv.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errs.Wrap(err, "listen and serve")
			}
			return nil
		case <-ctx.Done():
		}

		logging.Info(ctx, "shutting down http server", slog.Duration("timeout", serverCfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		logging.Info(ctx, "http server stopped")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
