package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// ProductEditor is the admin product workflow.
type ProductEditor interface {
	List(ctx context.Context, category string) []product.Product
	NewDraft() product.Product
	Save(ctx context.Context, in product.ProductInput) (product.SaveResult, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) []string
}

// AdminProductList lists the catalog for the admin table; category "all" or
// empty lists everything.
func AdminProductList(editor ProductEditor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if editor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product editor unavailable"))
			return
		}
		list := editor.List(r.Context(), validators.SanitizeString(r.URL.Query().Get("category"), maxSearchLength))
		responses.WriteSuccessMeta(w, list, types.ListMeta{Count: len(list)})
	}
}

func AdminProductDraft(editor ProductEditor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if editor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product editor unavailable"))
			return
		}
		responses.WriteSuccess(w, editor.NewDraft())
	}
}

// AdminProductSave creates or replaces a product. The response reports any
// storage degradation applied to make the catalog fit.
func AdminProductSave(editor ProductEditor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if editor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product editor unavailable"))
			return
		}

		var payload product.ProductInput
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := editor.Save(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminProductDelete(editor ProductEditor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if editor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product editor unavailable"))
			return
		}
		if err := editor.Delete(r.Context(), pathParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// AdminCategories lists the built-in categories followed by the enabled custom ones.
func AdminCategories(editor ProductEditor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if editor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product editor unavailable"))
			return
		}
		responses.WriteSuccess(w, editor.Categories(r.Context()))
	}
}
