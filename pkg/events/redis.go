package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type redisTransport interface {
	Publish(ctx context.Context, channel string, payload any) error
	PSubscribe(ctx context.Context, patterns ...string) (*redis.PubSub, error)
}

// RedisBroker publishes changes on one redis channel per document key
// (<prefix>:<key>) and fans received messages out to local subscribers.
type RedisBroker struct {
	transport redisTransport
	prefix    string
	logg      *logger.Logger
	local     *MemoryBroker

	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

// NewRedisBroker subscribes to every change channel under prefix and starts the
// receive loop.
func NewRedisBroker(ctx context.Context, transport redisTransport, prefix string, logg *logger.Logger) (*RedisBroker, error) {
	b := newRedisBroker(transport, prefix, logg)
	ps, err := transport.PSubscribe(ctx, b.channel("*"))
	if err != nil {
		return nil, fmt.Errorf("subscribing to change channels: %w", err)
	}
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("confirming change subscription: %w", err)
	}
	b.pubsub = ps
	go b.consume(ps.Channel())
	return b, nil
}

func newRedisBroker(transport redisTransport, prefix string, logg *logger.Logger) *RedisBroker {
	if logg == nil {
		logg = logger.Nop()
	}
	return &RedisBroker{
		transport: transport,
		prefix:    strings.TrimSuffix(strings.TrimSpace(prefix), ":"),
		logg:      logg,
		local:     NewMemoryBroker(),
		done:      make(chan struct{}),
	}
}

func (b *RedisBroker) channel(key string) string {
	if b.prefix == "" {
		return key
	}
	return b.prefix + ":" + key
}

// Publish sends the change to redis. Local subscribers hear it when the
// message comes back through the subscription, same as remote peers.
func (b *RedisBroker) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}
	if err := b.transport.Publish(ctx, b.channel(change.Key), payload); err != nil {
		return fmt.Errorf("publishing change for %s: %w", change.Key, err)
	}
	return nil
}

func (b *RedisBroker) OnDocumentChanged(origin, key string, fn Handler) func() {
	return b.local.OnDocumentChanged(origin, key, fn)
}

func (b *RedisBroker) consume(msgs <-chan *redis.Message) {
	defer close(b.done)
	for msg := range msgs {
		var change Change
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			ctx := b.logg.WithField(context.Background(), "channel", msg.Channel)
			b.logg.WarnErr(ctx, "events.decode_failed", err)
			continue
		}
		if change.Key == "" {
			change.Key = strings.TrimPrefix(msg.Channel, b.prefix+":")
		}
		_ = b.local.Publish(context.Background(), change)
	}
}

func (b *RedisBroker) Close() error {
	var err error
	b.once.Do(func() {
		if b.pubsub != nil {
			err = b.pubsub.Close()
			<-b.done
		}
		_ = b.local.Close()
	})
	return err
}
