package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minishoplabs/minishop-backend/api/routes"
	"github.com/minishoplabs/minishop-backend/internal/accounts"
	"github.com/minishoplabs/minishop-backend/internal/cart"
	"github.com/minishoplabs/minishop-backend/internal/catalog"
	"github.com/minishoplabs/minishop-backend/internal/orders"
	"github.com/minishoplabs/minishop-backend/internal/payments"
	"github.com/minishoplabs/minishop-backend/pkg/auth/session"
	"github.com/minishoplabs/minishop-backend/pkg/config"
	"github.com/minishoplabs/minishop-backend/pkg/db"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
	"github.com/minishoplabs/minishop-backend/pkg/metrics"
	"github.com/minishoplabs/minishop-backend/pkg/migrate"
	"github.com/minishoplabs/minishop-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())

	if cfg.FeatureFlags.SeedDemoData {
		seeder, err := catalog.NewSeeder(catalogRepo, catalog.DefaultImageDir, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog seeder", err)
			os.Exit(1)
		}
		if _, err := seeder.Seed(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed demo catalog", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	accountsService, err := accounts.NewService(accounts.ServiceParams{
		DB:             dbClient,
		Repo:           accounts.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartRepo := cart.NewRepository(dbClient.DB())
	cartService, err := cart.NewService(cartRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var gateway payments.Gateway
	if cfg.Stripe.Configured() {
		stripeGateway, err := payments.NewStripeGateway(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create stripe gateway", err)
			os.Exit(1)
		}
		gateway = stripeGateway
	} else {
		logg.Info(context.Background(), "stripe not configured, checkout runs simulated payments")
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		DB:       dbClient,
		Repo:     orders.NewRepository(dbClient.DB()),
		Cart:     cartRepo,
		Products: catalogRepo,
		Gateway:  gateway,
		Currency: cfg.Stripe.Currency,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	router := routes.NewRouter(routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		DBPinger:       dbClient,
		RedisClient:    redisClient,
		Sessions:       sessionManager,
		HTTPMetrics:    httpMetrics,
		Accounts:       accountsService,
		Catalog:        catalogService,
		Cart:           cartService,
		Orders:         ordersService,
		MetricsHandler: promhttp.Handler(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
