package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

type redisDocuments interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	DocumentKey(key string) string
}

// Redis stores each document as a plain string value under <namespace>:doc:<key>.
type Redis struct {
	client redisDocuments
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := r.client.Get(ctx, r.client.DocumentKey(key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return doc, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.client.DocumentKey(key), value); err != nil {
		if isRedisOOM(err) {
			return fmt.Errorf("redis set %s: %w", key, ErrQuotaExceeded)
		}
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.client.DocumentKey(key)); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// isRedisOOM matches the error redis returns when maxmemory is reached.
func isRedisOOM(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM ")
}
