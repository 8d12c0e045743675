// Package docstore persists whole JSON documents under string keys. It plays the
// role of a browser storage origin: every write replaces the document, reads
// return the last write, and a write that does not fit leaves the previous
// document in place.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no document is stored under the key.
	ErrNotFound = errors.New("document not found")
	// ErrQuotaExceeded is returned by Put when the document does not fit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store reads and writes whole documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Closer is implemented by stores holding external connections.
type Closer interface {
	Close() error
}

// IsQuotaExceeded reports whether err signals a full store.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}
