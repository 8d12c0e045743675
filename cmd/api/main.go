package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/browse"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/instance"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	b, err := openBackend(context.Background(), cfg, logg, metrics.NewDocumentMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap storage", err)
		os.Exit(1)
	}

	handler, err := buildHandler(context.Background(), cfg, logg, b, registry)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		_ = b.Close()
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	// WriteTimeout stays zero so event streams are not cut off.
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			_ = b.Close()
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.App.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"api": func(shutdownCtx context.Context) error {
				logg.Info(ctx, "shutting down api server")
				return multierr.Append(server.Shutdown(shutdownCtx), b.Close())
			},
		},
	)
	exitCode := <-wait
	logg.Info(logg.WithField(ctx, "exit_code", exitCode), "api server exited")
	os.Exit(exitCode)
}

// buildHandler wires the catalog, settings, cart and browse services over the
// backend and returns the router.
func buildHandler(ctx context.Context, cfg *config.Config, logg *logger.Logger, b *backend, registry *prometheus.Registry) (http.Handler, error) {
	repo, err := product.NewRepository(b.docs, b.broker, cfg.Catalog.LegacyKey, logg)
	if err != nil {
		return nil, err
	}
	if migrated, err := repo.MigrateLegacyKey(ctx); err != nil {
		logg.WarnErr(ctx, "products.legacy_migration_failed", err)
	} else if migrated {
		logg.Info(logg.WithField(ctx, "legacy_key", cfg.Catalog.LegacyKey), "products.legacy_migrated")
	}

	settingsStore, err := settings.NewStore(b.docs, b.broker, logg)
	if err != nil {
		return nil, err
	}
	editor, err := product.NewEditor(repo, settingsStore, cfg.Catalog, logg)
	if err != nil {
		return nil, err
	}
	carts, err := cart.NewStore(b.docs, b.broker, logg)
	if err != nil {
		return nil, err
	}
	browseSvc, err := browse.NewService(repo)
	if err != nil {
		return nil, err
	}

	return routes.NewRouter(cfg, logg, routes.Dependencies{
		Docs:     b.docs,
		Broker:   b.broker,
		Catalog:  repo,
		Browse:   browseSvc,
		Settings: settingsStore,
		Carts:    carts,
		Editor:   editor,
		Metrics:  registry,
		Feeds: routes.Feeds{
			Settings: settingsStore,
			Catalog:  repo,
			Carts:    carts,
		},
	}), nil
}
