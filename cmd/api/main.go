package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmbeauty/storefront-backend/api/routes"
	authsvc "github.com/cmbeauty/storefront-backend/internal/auth"
	"github.com/cmbeauty/storefront-backend/internal/cart"
	"github.com/cmbeauty/storefront-backend/internal/catalog"
	checkoutsvc "github.com/cmbeauty/storefront-backend/internal/checkout"
	"github.com/cmbeauty/storefront-backend/internal/history"
	"github.com/cmbeauty/storefront-backend/internal/reviews"
	"github.com/cmbeauty/storefront-backend/internal/users"
	"github.com/cmbeauty/storefront-backend/pkg/auth/session"
	"github.com/cmbeauty/storefront-backend/pkg/config"
	"github.com/cmbeauty/storefront-backend/pkg/db"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
	"github.com/cmbeauty/storefront-backend/pkg/metrics"
	"github.com/cmbeauty/storefront-backend/pkg/migrate"
	redisclient "github.com/cmbeauty/storefront-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redisclient.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	conn := dbClient.DB()
	userService := users.NewService(users.NewRepository(conn), cfg.Password)
	authService := authsvc.NewService(userService, sessionManager, cfg.JWT, logg)
	catalogService := catalog.NewService(catalog.NewRepository(conn))
	reviewService := reviews.NewService(reviews.NewRepository(conn))
	cartService := cart.NewService(cart.NewRepository(conn))
	historyService := history.NewService(history.NewRepository(conn))
	checkoutService := checkoutsvc.NewService(
		dbClient,
		checkoutsvc.NewRepository(conn),
		cfg.Checkout.ConfirmationAttempts,
		checkoutMetrics,
		logg,
	)

	router := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Sessions: sessionManager,
		Registry: registry,

		Auth:     authService,
		Users:    userService,
		Catalog:  catalogService,
		Reviews:  reviewService,
		Cart:     cartService,
		Checkout: checkoutService,
		History:  historyService,
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
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		closeErr = multierr.Append(closeErr, redisClient.Close())
		closeErr = multierr.Append(closeErr, dbClient.Close())
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
