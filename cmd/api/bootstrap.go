package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// backend holds the storage and change-broker wiring plus everything that
// must be closed on shutdown, in close order.
type backend struct {
	docs    docstore.Store
	broker  events.Broker
	closers []func() error
}

func (b *backend) onClose(fn func() error) {
	b.closers = append([]func() error{fn}, b.closers...)
}

// Close releases every resource and reports all failures together.
func (b *backend) Close() error {
	var err error
	for _, fn := range b.closers {
		err = multierr.Append(err, fn())
	}
	b.closers = nil
	return err
}

// openBackend selects the document store and broker named by cfg, then wraps
// the store with metrics and change notification.
func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger, m *metrics.DocumentMetrics) (*backend, error) {
	b := &backend{}

	var redisClient *redis.Client
	needRedis := cfg.Storage.DriverName() == config.StorageDriverRedis || cfg.Events.DriverName() == config.EventsDriverRedis
	if needRedis {
		client, err := redis.New(ctx, cfg.Redis, cfg.Storage.Namespace, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		redisClient = client
		b.onClose(client.Close)
	}

	var base docstore.Store
	switch driver := cfg.Storage.DriverName(); {
	case driver == config.StorageDriverMemory:
		base = docstore.NewMemory(cfg.Storage.QuotaBytes)
	case driver == config.StorageDriverRedis:
		base = docstore.WithQuota(docstore.NewRedis(redisClient), cfg.Storage.QuotaBytes)
	case cfg.Storage.IsSQL():
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("bootstrap database: %w", err), b.Close())
		}
		b.onClose(client.Close)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("dev migrations: %w", err), b.Close())
		}
		store := docstore.NewSQL(client)
		if cfg.Storage.AutoMigrate && !cfg.App.IsDev() {
			if err := store.AutoMigrate(ctx); err != nil {
				return nil, multierr.Append(fmt.Errorf("auto migrate documents: %w", err), b.Close())
			}
		}
		base = docstore.WithQuota(store, cfg.Storage.QuotaBytes)
	default:
		return nil, multierr.Append(fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver), b.Close())
	}

	switch cfg.Events.DriverName() {
	case config.EventsDriverRedis:
		broker, err := events.NewRedisBroker(ctx, redisClient, cfg.Events.ChannelPrefix, logg)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("bootstrap change broker: %w", err), b.Close())
		}
		b.broker = broker
	default:
		b.broker = events.NewMemoryBroker()
	}
	b.onClose(b.broker.Close)

	b.docs = docstore.Notifying(docstore.Instrumented(base, m), b.broker, logg, m)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"storage_driver": cfg.Storage.DriverName(),
		"events_driver":  cfg.Events.DriverName(),
		"quota_bytes":    cfg.Storage.QuotaBytes,
	}), "document store ready")
	return b, nil
}
