package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	ClientOriginHeader = "X-Client-Origin"
	CartIDHeader       = "X-Cart-Id"

	maxOriginLength = 128
)

// ClientOrigin tags the request with the client origin so that writes it
// makes are not echoed back to that same client.
func ClientOrigin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get(ClientOriginHeader))
			if len(origin) > maxOriginLength {
				origin = origin[:maxOriginLength]
			}
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := events.WithOrigin(r.Context(), origin)
			if logg != nil {
				ctx = logg.WithOrigin(ctx, origin)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartID selects the cart named by the X-Cart-Id header.
func CartID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID := strings.TrimSpace(r.Header.Get(CartIDHeader))
			if err := cart.ValidateID(cartID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			ctx := WithCartID(r.Context(), cartID)
			if logg != nil && cartID != "" {
				ctx = logg.WithField(ctx, "cart_id", cartID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
