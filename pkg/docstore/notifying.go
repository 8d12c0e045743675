package docstore

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type notifyingStore struct {
	Store
	publisher events.Publisher
	logg      *logger.Logger
	metrics   *metrics.DocumentMetrics
}

// Notifying publishes a change after every successful Put or Delete. The origin
// is taken from the context so the writer's own subscriptions are skipped.
// Publish failures are logged; the write has already happened.
func Notifying(store Store, publisher events.Publisher, logg *logger.Logger, m *metrics.DocumentMetrics) Store {
	if publisher == nil {
		return store
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &notifyingStore{Store: store, publisher: publisher, logg: logg, metrics: m}
}

func (s *notifyingStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.Store.Put(ctx, key, value); err != nil {
		return err
	}
	s.publish(ctx, key, false)
	return nil
}

func (s *notifyingStore) Delete(ctx context.Context, key string) error {
	if err := s.Store.Delete(ctx, key); err != nil {
		return err
	}
	s.publish(ctx, key, true)
	return nil
}

func (s *notifyingStore) publish(ctx context.Context, key string, deleted bool) {
	change := events.NewChange(key, events.OriginFromContext(ctx), deleted)
	if err := s.publisher.Publish(ctx, change); err != nil {
		s.logg.WarnErr(s.logg.WithDocumentKey(ctx, key), "docstore.publish_failed", err)
		return
	}
	s.metrics.IncPublished(key)
}

func (s *notifyingStore) Close() error {
	if c, ok := s.Store.(Closer); ok {
		return c.Close()
	}
	return nil
}
