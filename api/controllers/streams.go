package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// SettingsFeed delivers the reloaded settings after another origin saves them.
type SettingsFeed interface {
	OnChange(origin string, fn func(settings.StoreSettings)) func()
}

// CatalogFeed delivers the reloaded catalog after another origin saves it.
type CatalogFeed interface {
	OnChange(origin string, fn func([]product.Product)) func()
}

// CartFeed delivers a reloaded cart after another origin changes it.
type CartFeed interface {
	OnChange(origin, cartID string, fn func(cart.Cart)) func()
}

// SettingsStream pushes the whole settings document as a "settings" event
// each time a peer saves it.
func SettingsStream(feed SettingsFeed, heartbeat time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if feed == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings feed unavailable"))
			return
		}
		serveStream(w, r, logg, heartbeat, []string{settings.DocumentKey}, func(origin string, push func(streamEvent)) []func() {
			return []func(){feed.OnChange(origin, func(s settings.StoreSettings) {
				push(documentEvent("settings", s))
			})}
		})
	}
}

// CatalogStream pushes the whole product list as a "products" event each
// time a peer saves the catalog.
func CatalogStream(feed CatalogFeed, heartbeat time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if feed == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog feed unavailable"))
			return
		}
		serveStream(w, r, logg, heartbeat, []string{product.DocumentKey}, func(origin string, push func(streamEvent)) []func() {
			return []func(){feed.OnChange(origin, func(list []product.Product) {
				push(documentEvent("products", list))
			})}
		})
	}
}

// CartStream pushes the caller's cart as a "cart" event each time a peer
// changes it.
func CartStream(feed CartFeed, heartbeat time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if feed == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart feed unavailable"))
			return
		}
		cartID := middleware.CartIDFromContext(r.Context())
		serveStream(w, r, logg, heartbeat, []string{cart.Key(cartID)}, func(origin string, push func(streamEvent)) []func() {
			return []func(){feed.OnChange(origin, cartID, func(c cart.Cart) {
				push(documentEvent("cart", c))
			})}
		})
	}
}

func documentEvent(name string, doc any) streamEvent {
	return streamEvent{id: uuid.NewString(), name: name, data: doc}
}
