package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/seed"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
)

func newSeedCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default shop name, categories and sample products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)
			ctx := cmd.Context()

			if cfg.RunMigrations {
				if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
					return fmt.Errorf("db migrate: %w", err)
				}
			}

			pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()

			_, err = seed.Run(ctx,
				catalog.NewService(catalog.NewPostgresRepository(pool)),
				settings.NewService(settings.NewPostgresRepository(pool), cfg.DefaultDeliveryFee, cfg.DefaultShopName),
				logger,
			)
			return err
		},
	}
}
