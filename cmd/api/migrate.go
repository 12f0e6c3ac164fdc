package main

import (
	"context"
	"log/slog"

	"content-analytics-service/internal/config"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var storeCfg config.Store

	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the content tables for local setups",
		Flags: storeCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			db, err := storeCfg.Open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := storeCfg.CreateSchema(ctx, db); err != nil {
				return err
			}

			logger.Info("schema ready", slog.Any("store", storeCfg))
			return nil
		},
	}
}
