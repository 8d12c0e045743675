package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	// DefaultHeartbeat keeps idle streams alive through proxies.
	DefaultHeartbeat = 25 * time.Second

	eventBuffer     = 32
	maxStreamedKeys = 16
)

// Subscriber is the subscribe side of the change broker.
type Subscriber interface {
	OnDocumentChanged(origin, key string, fn events.Handler) (unsubscribe func())
}

type streamEvent struct {
	id   string
	name string
	data any
}

// Events streams document changes as server-sent events. The keys query
// parameter lists the documents to watch (all when empty); changes written by
// the stream's own origin are not sent back to it.
func Events(broker Subscriber, heartbeat time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if broker == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "change broker unavailable"))
			return
		}
		keys := validators.ParseQueryList(r, "keys")
		if len(keys) > maxStreamedKeys {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many keys").
				WithDetails(map[string]any{"field": "keys", "max": maxStreamedKeys}))
			return
		}
		if len(keys) == 0 {
			keys = []string{""}
		}

		serveStream(w, r, logg, heartbeat, keys, func(origin string, push func(streamEvent)) []func() {
			stops := make([]func(), 0, len(keys))
			for _, key := range keys {
				stops = append(stops, broker.OnDocumentChanged(origin, key, func(change events.Change) {
					push(streamEvent{id: change.EventID, name: "change", data: change})
				}))
			}
			return stops
		})
	}
}

// streamOrigin is the origin a stream subscribes as: the origin query
// parameter, else the client origin header.
func streamOrigin(r *http.Request) string {
	if origin := validators.SanitizeString(r.URL.Query().Get("origin"), 128); origin != "" {
		return origin
	}
	return strings.TrimSpace(r.Header.Get(middleware.ClientOriginHeader))
}

// serveStream subscribes, writes the event-stream preamble and relays pushed
// events until the client goes away. Events that do not fit in the buffer
// are dropped and logged.
func serveStream(w http.ResponseWriter, r *http.Request, logg *logger.Logger, heartbeat time.Duration, keys []string, subscribe func(origin string, push func(streamEvent)) []func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
		return
	}
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	if logg == nil {
		logg = logger.Nop()
	}

	origin := streamOrigin(r)
	ctx := logg.WithOrigin(logg.WithField(r.Context(), "keys", keys), origin)

	pending := make(chan streamEvent, eventBuffer)
	push := func(ev streamEvent) {
		select {
		case pending <- ev:
		default:
			logg.Warn(logg.WithField(ctx, "event", ev.name), "events.stream_dropped")
		}
	}
	for _, stop := range subscribe(origin, push) {
		defer stop()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()
	logg.Info(ctx, "events.stream_opened")

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logg.Info(ctx, "events.stream_closed")
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev := <-pending:
			if err := writeEvent(w, ev); err != nil {
				logg.WarnErr(ctx, "events.stream_write_failed", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev streamEvent) error {
	payload, err := json.Marshal(ev.data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.id, ev.name, payload)
	return err
}
