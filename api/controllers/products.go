package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/browse"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const maxSearchLength = 200

// Catalog is the read side of the product catalog.
type Catalog interface {
	GetAll(ctx context.Context) []product.Product
	GetByID(ctx context.Context, id string) (product.Product, bool)
	ByCategory(ctx context.Context, category string) []product.Product
	ByType(ctx context.Context, t product.Type) []product.Product
	Featured(ctx context.Context) []product.Product
	Discounted(ctx context.Context) []product.Product
	NewArrivals(ctx context.Context) []product.Product
}

// ProductsBrowse serves the filtered, sorted listing page.
func ProductsBrowse(svc browse.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "browse service unavailable"))
			return
		}

		q := r.URL.Query()
		sort, ok := browse.ParseSort(q.Get("sort"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort").
				WithDetails(map[string]any{"field": "sort", "allowed": []browse.Sort{
					browse.SortDefault, browse.SortPriceAsc, browse.SortPriceDesc,
					browse.SortDiscount, browse.SortNameAsc, browse.SortNameDesc,
				}}))
			return
		}
		minPrice, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "min_price must not exceed max_price").
				WithDetails(map[string]any{"min_price": minPrice.String(), "max_price": maxPrice.String()}))
			return
		}

		query := browse.Query{
			Category: validators.SanitizeString(q.Get("category"), maxSearchLength),
			Search:   validators.SanitizeString(q.Get("search"), maxSearchLength),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Sort:     sort,
		}
		responses.WriteSuccess(w, svc.Browse(r.Context(), query))
	}
}

func ProductsFeatured(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return listProducts(catalog, logg, func(ctx context.Context, r *http.Request) ([]product.Product, error) {
		return catalog.Featured(ctx), nil
	})
}

func ProductsDiscounted(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return listProducts(catalog, logg, func(ctx context.Context, r *http.Request) ([]product.Product, error) {
		return catalog.Discounted(ctx), nil
	})
}

func ProductsNewArrivals(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return listProducts(catalog, logg, func(ctx context.Context, r *http.Request) ([]product.Product, error) {
		return catalog.NewArrivals(ctx), nil
	})
}

// ProductsByType lists clothing, shoes or accessory products.
func ProductsByType(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return listProducts(catalog, logg, func(ctx context.Context, r *http.Request) ([]product.Product, error) {
		t := product.Type(pathParam(r, "type"))
		switch t {
		case product.TypeClothing, product.TypeShoes, product.TypeAccessory:
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type").
				WithDetails(map[string]any{"field": "type", "allowed": []product.Type{product.TypeClothing, product.TypeShoes, product.TypeAccessory}})
		}
		return catalog.ByType(ctx, t), nil
	})
}

// ProductsByCategory lists products whose category normalizes to the path value.
func ProductsByCategory(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return listProducts(catalog, logg, func(ctx context.Context, r *http.Request) ([]product.Product, error) {
		return catalog.ByCategory(ctx, pathParam(r, "category")), nil
	})
}

func ProductDetail(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		id := pathParam(r, "productId")
		p, ok := catalog.GetByID(r.Context(), id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"productId": id}))
			return
		}
		responses.WriteSuccess(w, p)
	}
}

func listProducts(catalog Catalog, logg *logger.Logger, fetch func(context.Context, *http.Request) ([]product.Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		list, err := fetch(r.Context(), r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, list, types.ListMeta{Count: len(list)})
	}
}
