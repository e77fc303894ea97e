package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/iiifas/internal/infra/providers"
	"github.com/totegamma/iiifas/internal/present/rest"
	cachemw "github.com/totegamma/iiifas/internal/present/rest/middleware"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the feed over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if conf.Server.EnableTrace {
			cleanup, err := setupTraceProvider(ctx, conf.Server.TraceEndpoint, "iiifas", version)
			if err != nil {
				return err
			}
			defer cleanup()
		}

		eventStore, closeStore, err := providers.NewStore(ctx, conf)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				slog.Error("failed to close event store", slog.String("module", "main"), slog.String("error", err.Error()))
			}
		}()

		feed := providers.NewFeedUsecase(conf, eventStore)

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}))
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
		e.Use(middleware.CORS())
		if conf.Server.EnableTrace {
			e.Use(otelecho.Middleware("iiifas"))
		}
		if conf.Server.CacheTimeout > 0 {
			e.Use(cachemw.NewResponseCache(time.Duration(conf.Server.CacheTimeout) * time.Second).Handle)
		}

		rest.NewHandler(feed).RegisterRoutes(e)

		go func() {
			slog.Info(
				"starting server",
				slog.String("module", "main"),
				slog.String("listen", conf.Server.Listen),
				slog.String("collection", conf.Collection),
				slog.String("version", version),
			)
			err := e.Start(conf.Server.Listen)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("server stopped", slog.String("module", "main"), slog.String("error", err.Error()))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
