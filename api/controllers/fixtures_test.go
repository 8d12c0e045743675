package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/browse"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	"github.com/angelmondragon/storefront-backend/pkg/events"
)

type fixture struct {
	docs     docstore.Store
	broker   *events.MemoryBroker
	repo     *product.Repository
	editor   *product.Editor
	carts    *cart.Store
	settings *settings.Store
	browse   browse.Service
}

func newFixture(t *testing.T, catalog ...product.Product) *fixture {
	t.Helper()
	broker := events.NewMemoryBroker()
	docs := docstore.Notifying(docstore.NewMemory(0), broker, nil, nil)

	repo, err := product.NewRepository(docs, broker, "", nil)
	require.NoError(t, err)
	if catalog != nil {
		require.NoError(t, repo.Save(context.Background(), catalog))
	}
	settingsStore, err := settings.NewStore(docs, broker, nil)
	require.NoError(t, err)
	editor, err := product.NewEditor(repo, settingsStore, config.CatalogConfig{TruncateKeep: 5, MaxSecondaryImages: 2}, nil)
	require.NoError(t, err)
	carts, err := cart.NewStore(docs, broker, nil)
	require.NoError(t, err)
	browseSvc, err := browse.NewService(repo)
	require.NoError(t, err)

	return &fixture{
		docs:     docs,
		broker:   broker,
		repo:     repo,
		editor:   editor,
		carts:    carts,
		settings: settingsStore,
		browse:   browseSvc,
	}
}

func sampleCatalog() []product.Product {
	return []product.Product{
		{ID: "p1", Name: "Tênis", Description: "d", Price: 200, Discount: 50, Category: "calçados", Type: product.TypeShoes, ImageURL: "https://img/p1.jpg", Featured: true},
		{ID: "p2", Name: "Bota", Description: "d", Price: 150, Category: "calcados", Type: product.TypeShoes, ImageURL: "https://img/p2.jpg"},
		{ID: "p3", Name: "Camisa", Description: "d", Price: 80, Discount: 10, Category: "masculino", Type: product.TypeClothing, ImageURL: "https://img/p3.jpg"},
		{ID: "p4", Name: "Bolsa", Description: "d", Price: 120, Category: "acessorios", Type: product.TypeAccessory, ImageURL: "https://img/p4.jpg"},
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(raw))
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code
}

func productIDs(list []product.Product) string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return strings.Join(ids, ",")
}

func customLink(label string, enabled bool) settings.CustomLink {
	return settings.CustomLink{Label: label, Enabled: enabled}
}
