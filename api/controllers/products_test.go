package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/storefront-backend/internal/browse"
	product "github.com/angelmondragon/storefront-backend/internal/products"
)

func TestProductsBrowse(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)
	handler := ProductsBrowse(f.browse, nil)

	tests := []struct {
		name   string
		target string
		status int
		ids    string
		code   string
	}{
		{name: "category with price sort", target: "/api/v1/products?category=cal%C3%A7ados&sort=price_asc", status: http.StatusOK, ids: "p1,p2"},
		{name: "search", target: "/api/v1/products?search=%20BOLSA%20", status: http.StatusOK, ids: "p4"},
		{name: "off listing", target: "/api/v1/products?category=off", status: http.StatusOK, ids: "p1,p3"},
		{name: "min price only", target: "/api/v1/products?min_price=110", status: http.StatusOK, ids: "p2,p4"},
		{name: "closed range", target: "/api/v1/products?min_price=70&max_price=100&sort=price_desc", status: http.StatusOK, ids: "p1,p3"},
		{name: "inverted range", target: "/api/v1/products?min_price=100&max_price=10", status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "bad price", target: "/api/v1/products?max_price=cheap", status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "unknown sort", target: "/api/v1/products?sort=random", status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(handler, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if resp.Code != tt.status {
				t.Fatalf("expected %d got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
			if tt.code != "" {
				if got := decodeErrorCode(t, resp); got != tt.code {
					t.Fatalf("expected code %s got %s", tt.code, got)
				}
				return
			}
			var result browse.Result
			decodeData(t, resp, &result)
			if got := productIDs(result.Products); got != tt.ids {
				t.Fatalf("expected %s got %s", tt.ids, got)
			}
			if result.Count != len(result.Products) {
				t.Fatalf("count %d does not match %d products", result.Count, len(result.Products))
			}
		})
	}
}

type countingBrowse struct {
	browse.Service
	calls int
}

func (c *countingBrowse) Browse(ctx context.Context, q browse.Query) browse.Result {
	c.calls++
	return c.Service.Browse(ctx, q)
}

func TestProductsBrowseHalfOpenRangeReadsCatalogOnce(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)
	svc := &countingBrowse{Service: f.browse}
	resp := serve(ProductsBrowse(svc, nil), httptest.NewRequest(http.MethodGet, "/api/v1/products?max_price=90", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("expected one catalog read, got %d", svc.calls)
	}
	var result browse.Result
	decodeData(t, resp, &result)
	if !result.Range.Min.IsZero() || result.Range.Max.String() != "90" {
		t.Fatalf("unexpected range %s-%s", result.Range.Min, result.Range.Max)
	}
	if got := productIDs(result.Products); got != "p3" {
		t.Fatalf("expected p3 got %s", got)
	}
}

func TestProductsBrowseReportsBoundsAndTitle(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)
	resp := serve(ProductsBrowse(f.browse, nil), httptest.NewRequest(http.MethodGet, "/api/v1/products?category=calcados", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var result browse.Result
	decodeData(t, resp, &result)
	if result.Bounds.Max.String() != "150" || !result.Bounds.Min.IsZero() {
		t.Fatalf("unexpected bounds %s-%s", result.Bounds.Min, result.Bounds.Max)
	}
	if result.Title != "Calçados" {
		t.Fatalf("unexpected title %q", result.Title)
	}
}

func TestProductLists(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		req     *http.Request
		status  int
		ids     string
	}{
		{"featured", ProductsFeatured(f.repo, nil), httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "p1"},
		{"discounted", ProductsDiscounted(f.repo, nil), httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "p1,p3"},
		{"new arrivals", ProductsNewArrivals(f.repo, nil), httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "p1,p2,p3,p4"},
		{"by type", ProductsByType(f.repo, nil), withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "type", "shoes"), http.StatusOK, "p1,p2"},
		{"by category", ProductsByCategory(f.repo, nil), withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "category", "Acess%C3%B3rios"), http.StatusOK, "p4"},
		{"unknown type", ProductsByType(f.repo, nil), withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "type", "hats"), http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(tt.handler, tt.req)
			if resp.Code != tt.status {
				t.Fatalf("expected %d got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var list []product.Product
			decodeData(t, resp, &list)
			if got := productIDs(list); got != tt.ids {
				t.Fatalf("expected %s got %s", tt.ids, got)
			}
		})
	}
}

func TestProductDetail(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)
	handler := ProductDetail(f.repo, nil)

	resp := serve(handler, withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "productId", "p3"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var p product.Product
	decodeData(t, resp, &p)
	if p.Name != "Camisa" {
		t.Fatalf("unexpected product %+v", p)
	}

	resp = serve(handler, withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "productId", "missing"))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != "NOT_FOUND" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestProductHandlersWithoutCatalog(t *testing.T) {
	resp := serve(ProductDetail(nil, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	resp = serve(ProductsBrowse(nil, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
