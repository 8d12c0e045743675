package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const changeVersion = 1

// Change announces that the document stored under Key was rewritten or removed.
type Change struct {
	Version int       `json:"version"`
	EventID string    `json:"eventId"`
	Key     string    `json:"key"`
	Origin  string    `json:"origin,omitempty"`
	Deleted bool      `json:"deleted,omitempty"`
	At      time.Time `json:"at"`
}

// NewChange stamps a change for key with a fresh event id.
func NewChange(key, origin string, deleted bool) Change {
	return Change{
		Version: changeVersion,
		EventID: uuid.NewString(),
		Key:     key,
		Origin:  origin,
		Deleted: deleted,
		At:      time.Now().UTC(),
	}
}

// Handler receives delivered changes.
type Handler func(Change)

// Publisher announces document changes.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// Broker fans document changes out to subscribers. A change is never delivered
// to subscribers registered under the origin that produced it.
type Broker interface {
	Publisher
	// OnDocumentChanged registers fn for changes to key ("" matches every key)
	// on behalf of origin. The returned func removes the subscription.
	OnDocumentChanged(origin, key string, fn Handler) (unsubscribe func())
	Close() error
}

type originKey struct{}

// WithOrigin records the client origin (tab, peer) issuing the current call.
func WithOrigin(ctx context.Context, origin string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext returns the origin recorded by WithOrigin, or "".
func OriginFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	origin, _ := ctx.Value(originKey{}).(string)
	return origin
}

func shouldDeliver(subOrigin, subKey string, change Change) bool {
	if subKey != "" && subKey != change.Key {
		return false
	}
	if change.Origin != "" && change.Origin == subOrigin {
		return false
	}
	return true
}
