package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	statsHttp "content-analytics-service/internal/analytics/adapters/http/fiber"
	"content-analytics-service/internal/analytics/core/usecase"
	"content-analytics-service/internal/config"
	"content-analytics-service/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

const requestIDKey = "requestid"

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		storeCfg  config.Store
		engineCfg config.Engine
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the statistics HTTP API",
		Flags: config.JoinFlags(
			serverCfg.Flags(),
			storeCfg.Flags(),
			engineCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := serverCfg.Validate(); err != nil {
				return err
			}
			opts, err := engineCfg.Options()
			if err != nil {
				return err
			}

			logger.Info("starting content analytics server",
				slog.Any("server", serverCfg),
				slog.Any("store", storeCfg),
				slog.Any("engine", engineCfg),
			)

			db, err := storeCfg.Open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			metrics := observability.NewMetrics(prometheus.NewRegistry(), version)
			facade := usecase.NewStatisticsFacade(
				storeCfg.Repository(db),
				append(opts, usecase.WithRecorder(metrics))...,
			)

			app := newApp(logger, db, metrics, facade)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				errCh <- app.Listen(serverCfg.Addr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server stopped")
			case sig := <-quit:
				logger.Info("shutting down", slog.String("signal", sig.String()))
			case <-ctx.Done():
				logger.Info("shutting down", slog.Any("reason", ctx.Err()))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return goerr.Wrap(err, "fiber shutdown error")
			}

			logger.Info("server exiting")
			return nil
		},
	}
}

func newApp(logger *slog.Logger, db *sql.DB, metrics *observability.Metrics, facade *usecase.StatisticsFacade) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "content-analytics",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(statsHttp.RequestLogger(logger, requestIDKey))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			ctxlog.From(c.UserContext()).Warn("store ping failed", slog.Any("error", err))
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/internal/metrics", adaptor.HTTPHandler(metrics.Handler()))

	statsHttp.NewStatsHandler(statsHttp.FromFacade(facade)).Register(app)

	return app
}
