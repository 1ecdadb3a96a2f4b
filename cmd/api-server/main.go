package main

import (
	"Storefront/config"
	"Storefront/pkg/database"
	"Storefront/pkg/log"
	"Storefront/pkg/server"
	"Storefront/pkg/snowflake"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "storefront http api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				Usage:   "config file path",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					cfg, err := load(ctx)
					if err != nil {
						return err
					}
					app, cleanup, err := InitServer(cfg)
					if err != nil {
						return err
					}
					defer cleanup()
					return server.Run(ctx, app)
				},
			},
			{
				Name:  "migrate",
				Usage: "auto migrate database schema",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "seed", Usage: "insert default loyalty tiers after migration"},
				},
				Action: func(ctx *cli.Context) error {
					cfg, err := load(ctx)
					if err != nil {
						return err
					}
					db, cleanup, err := database.NewDB(cfg.Database)
					if err != nil {
						return err
					}
					defer cleanup()

					if err := database.Migrate(db); err != nil {
						return err
					}
					log.L.Info("migrate success")
					if ctx.Bool("seed") {
						return database.Seed(db)
					}
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "insert default loyalty tiers",
				Action: func(ctx *cli.Context) error {
					cfg, err := load(ctx)
					if err != nil {
						return err
					}
					db, cleanup, err := database.NewDB(cfg.Database)
					if err != nil {
						return err
					}
					defer cleanup()
					return database.Seed(db)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server exited", zap.Error(err))
	}
}

func load(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	log.SetDebug(cfg.Debug())
	if cfg.App.NodeID > 0 {
		if err := snowflake.SetNode(cfg.App.NodeID); err != nil {
			return nil, fmt.Errorf("snowflake node: %w", err)
		}
	}
	return cfg, nil
}
