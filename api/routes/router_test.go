package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/browse"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type testApp struct {
	handler http.Handler
	broker  *events.MemoryBroker
	carts   *cart.Store
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Env: "test"},
		Catalog: config.CatalogConfig{TruncateKeep: 5, MaxSecondaryImages: 2},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"https://shop.example"}},
	}

	registry := prometheus.NewRegistry()
	broker := events.NewMemoryBroker()
	docs := docstore.Notifying(
		docstore.Instrumented(docstore.NewMemory(0), metrics.NewDocumentMetrics(registry)),
		broker, nil, nil,
	)

	repo, err := product.NewRepository(docs, broker, cfg.Catalog.LegacyKey, nil)
	require.NoError(t, err)
	settingsStore, err := settings.NewStore(docs, broker, nil)
	require.NoError(t, err)
	editor, err := product.NewEditor(repo, settingsStore, cfg.Catalog, nil)
	require.NoError(t, err)
	carts, err := cart.NewStore(docs, broker, nil)
	require.NoError(t, err)
	browseSvc, err := browse.NewService(repo)
	require.NoError(t, err)

	handler := NewRouter(cfg, nil, Dependencies{
		Docs:     docs,
		Broker:   broker,
		Catalog:  repo,
		Browse:   browseSvc,
		Settings: settingsStore,
		Carts:    carts,
		Editor:   editor,
		Metrics:  registry,
		Feeds: Feeds{
			Settings: settingsStore,
			Catalog:  repo,
			Carts:    carts,
		},
	})
	return testApp{handler: handler, broker: broker, carts: carts}
}

func (a testApp) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	a.handler.ServeHTTP(resp, req)
	return resp
}

func TestRouterServesPublicRoutes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/api/v1/products", http.StatusOK},
		{http.MethodGet, "/api/v1/products?category=feminino&sort=name_asc", http.StatusOK},
		{http.MethodGet, "/api/v1/products/featured", http.StatusOK},
		{http.MethodGet, "/api/v1/products/discounted", http.StatusOK},
		{http.MethodGet, "/api/v1/products/new-arrivals", http.StatusOK},
		{http.MethodGet, "/api/v1/products/type/shoes", http.StatusOK},
		{http.MethodGet, "/api/v1/products/category/kids", http.StatusOK},
		{http.MethodGet, "/api/v1/products/f1", http.StatusOK},
		{http.MethodGet, "/api/v1/products/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/v1/settings", http.StatusOK},
		{http.MethodGet, "/api/v1/cart", http.StatusOK},
		{http.MethodGet, "/api/admin/v1/products?category=all", http.StatusOK},
		{http.MethodGet, "/api/admin/v1/products/draft", http.StatusOK},
		{http.MethodGet, "/api/admin/v1/categories", http.StatusOK},
		{http.MethodPost, "/api/v1/products", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		resp := app.do(tt.method, tt.target, "", nil)
		if resp.Code != tt.status {
			t.Fatalf("%s %s: expected %d got %d: %s", tt.method, tt.target, tt.status, resp.Code, resp.Body.String())
		}
	}
}

func TestRouterCartUsesCartHeader(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"f1","quantity":2,"selectedSize":"M"}`, map[string]string{"X-Cart-Id": "tab-9"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	require.Len(t, app.carts.Get(context.Background(), "tab-9").Items, 1)
	require.Empty(t, app.carts.Get(context.Background(), "").Items)

	resp = app.do(http.MethodGet, "/api/v1/cart", "", map[string]string{"X-Cart-Id": "bad id!"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = app.do(http.MethodDelete, "/api/v1/cart", "", map[string]string{"X-Cart-Id": "tab-9"})
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Empty(t, app.carts.Get(context.Background(), "tab-9").Items)
}

func TestRouterWritesSkipTheWritingOrigin(t *testing.T) {
	app := newTestApp(t)

	var self, peer int
	defer app.broker.OnDocumentChanged("tab-a", "storeSettings", func(events.Change) { self++ })()
	defer app.broker.OnDocumentChanged("tab-b", "storeSettings", func(events.Change) { peer++ })()

	resp := app.do(http.MethodPut, "/api/admin/v1/settings", `{"storeName":"Outra Loja"}`, map[string]string{"X-Client-Origin": "tab-a"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.Equal(t, 0, self)
	require.Equal(t, 1, peer)
}

func TestRouterExposesMetricsAndCORS(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodGet, "/api/v1/products", "", nil)

	resp := app.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "docstore_operations_total")

	resp = app.do(http.MethodOptions, "/api/v1/cart", "", map[string]string{
		"Origin":                         "https://shop.example",
		"Access-Control-Request-Method":  http.MethodGet,
		"Access-Control-Request-Headers": "X-Cart-Id",
	})
	require.Equal(t, "https://shop.example", resp.Header().Get("Access-Control-Allow-Origin"))
}
