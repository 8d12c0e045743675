package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type instrumentedStore struct {
	Store
	metrics *metrics.DocumentMetrics
}

// Instrumented records latency and outcome of every operation.
func Instrumented(store Store, m *metrics.DocumentMetrics) Store {
	if m == nil {
		return store
	}
	return &instrumentedStore{Store: store, metrics: m}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	doc, err := s.Store.Get(ctx, key)
	s.metrics.Observe("get", key, outcomeOf(err), time.Since(start))
	return doc, err
}

func (s *instrumentedStore) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.Store.Put(ctx, key, value)
	s.metrics.Observe("put", key, outcomeOf(err), time.Since(start))
	if err == nil {
		s.metrics.SetSize(key, len(value))
	}
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.Store.Delete(ctx, key)
	s.metrics.Observe("delete", key, outcomeOf(err), time.Since(start))
	if err == nil {
		s.metrics.SetSize(key, 0)
	}
	return err
}

func (s *instrumentedStore) Close() error {
	if c, ok := s.Store.(Closer); ok {
		return c.Close()
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeMissing
	case errors.Is(err, ErrQuotaExceeded):
		return metrics.OutcomeQuota
	default:
		return metrics.OutcomeError
	}
}
