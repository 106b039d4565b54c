package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/images"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telegram"
)

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logging.New(cfg.LogLevel, cfg.LogFormat))
		},
	}
}

type orderPublisher interface {
	order.EventPublisher
	Close() error
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return fmt.Errorf("db migrate: %w", err)
		}
	}

	// --- carts ---
	store, closeStore, err := newCartStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- events ---
	publisher, err := newPublisher(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn().Err(err).Msg("close publisher")
		}
	}()

	uploader, err := images.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		return err
	}
	if _, disabled := uploader.(images.DisabledUploader); disabled {
		logger.Warn().Msg("cloudinary credentials missing, image uploads disabled")
	}

	catalogSvc := catalog.NewService(catalog.NewPostgresRepository(pool))
	settingsSvc := settings.NewService(settings.NewPostgresRepository(pool), cfg.DefaultDeliveryFee, cfg.DefaultShopName)
	cartSvc := cart.NewService(store, catalogSvc)
	orderSvc := order.NewService(
		order.NewPostgresRepository(pool),
		store,
		settingsSvc,
		publisher,
		order.PolicyFromName(cfg.OrderStatusPolicy),
		logger,
	)

	verifier := telegram.NewVerifier(cfg.TelegramBotToken, cfg.TelegramInitDataTTL)
	if cfg.AdminAuthDisabled {
		logger.Warn().Msg("admin authentication is disabled")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Catalog:          catalogSvc,
		Carts:            cartSvc,
		Orders:           orderSvc,
		Settings:         settingsSvc,
		Images:           uploader,
		Verifier:         verifier,
		Admin:            telegram.NewAdminGuard(verifier, cfg.AdminUsernames, cfg.AdminAuthDisabled, logger),
		Logger:           logger,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

func newCartStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (cart.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("REDIS_URL not set, carts are kept in memory")
		return cart.NewMemoryStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	return cart.NewRedisStore(client, cfg.CartTTL), func() { _ = client.Close() }, nil
}

func newPublisher(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, logger zerolog.Logger) (orderPublisher, error) {
	if cfg.RabbitMQURL == "" {
		logger.Warn().Msg("RABBITMQ_URL not set, order events are not published")
		return events.NopPublisher{}, nil
	}

	conn, err := events.Dial(ctx, cfg.RabbitMQURL, logger)
	if err != nil {
		return nil, err
	}
	p, err := events.NewRabbitPublisher(conn, events.NewSequenceRepository(pool))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	return &connPublisher{RabbitPublisher: p, conn: conn}, nil
}

// connPublisher closes the AMQP connection along with the channel.
type connPublisher struct {
	*events.RabbitPublisher
	conn interface{ Close() error }
}

func (p *connPublisher) Close() error {
	return errors.Join(p.RabbitPublisher.Close(), p.conn.Close())
}
