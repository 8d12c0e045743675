package docstore

import "context"

type quotaStore struct {
	Store
	maxBytes int
}

// WithQuota rejects any single document larger than maxBytes before it reaches
// the wrapped store. Remote backends have no origin budget of their own.
func WithQuota(store Store, maxBytes int) Store {
	if maxBytes <= 0 {
		return store
	}
	return &quotaStore{Store: store, maxBytes: maxBytes}
}

func (q *quotaStore) Put(ctx context.Context, key string, value []byte) error {
	if len(key)+len(value) > q.maxBytes {
		return ErrQuotaExceeded
	}
	return q.Store.Put(ctx, key, value)
}

func (q *quotaStore) Close() error {
	if c, ok := q.Store.(Closer); ok {
		return c.Close()
	}
	return nil
}
