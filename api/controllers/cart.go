package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// CartStore is the cart document API used by the handlers.
type CartStore interface {
	Get(ctx context.Context, cartID string) cart.Cart
	Add(ctx context.Context, cartID string, item cart.Item) (cart.Cart, error)
	Remove(ctx context.Context, cartID string, id cart.Identity) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, cartID string, id cart.Identity, quantity int) (cart.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type cartItemRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"omitempty,gte=1"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

type cartQuantityRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

func CartFetch(store CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Get(r.Context(), middleware.CartIDFromContext(r.Context())))
	}
}

// CartAddItem snapshots the current catalog product into the cart. A missing
// quantity adds one unit.
func CartAddItem(store CartStore, catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(payload.ProductID)
		p, ok := catalog.GetByID(r.Context(), productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"productId": productID}))
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}
		updated, err := store.Add(r.Context(), middleware.CartIDFromContext(r.Context()), cart.Item{
			Product:       p,
			Quantity:      quantity,
			SelectedSize:  strings.TrimSpace(payload.SelectedSize),
			SelectedColor: strings.TrimSpace(payload.SelectedColor),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, updated)
	}
}

// CartUpdateQuantity sets the quantity of a line. Non-positive quantities leave
// the cart unchanged.
func CartUpdateQuantity(store CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := cart.Identity{
			ID:    strings.TrimSpace(payload.ProductID),
			Size:  strings.TrimSpace(payload.SelectedSize),
			Color: strings.TrimSpace(payload.SelectedColor),
		}
		updated, err := store.UpdateQuantity(r.Context(), middleware.CartIDFromContext(r.Context()), id, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CartRemoveItem drops the line named by the productId, size and color query parameters.
func CartRemoveItem(store CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		q := r.URL.Query()
		id := cart.Identity{
			ID:    strings.TrimSpace(q.Get("productId")),
			Size:  strings.TrimSpace(q.Get("size")),
			Color: strings.TrimSpace(q.Get("color")),
		}
		if id.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "productId is required").
				WithDetails(map[string]any{"field": "productId"}))
			return
		}

		updated, err := store.Remove(r.Context(), middleware.CartIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func CartClear(store CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		if err := store.Clear(r.Context(), middleware.CartIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
