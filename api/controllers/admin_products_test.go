package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	product "github.com/angelmondragon/storefront-backend/internal/products"
)

func TestAdminProductListFiltersByCategory(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)
	handler := AdminProductList(f.editor, nil)

	tests := []struct {
		target string
		ids    string
	}{
		{"/api/admin/v1/products", "p1,p2,p3,p4"},
		{"/api/admin/v1/products?category=all", "p1,p2,p3,p4"},
		{"/api/admin/v1/products?category=cal%C3%A7ados", "p1,p2"},
		{"/api/admin/v1/products?category=masculino", "p3"},
	}
	for _, tt := range tests {
		resp := serve(handler, httptest.NewRequest(http.MethodGet, tt.target, nil))
		require.Equal(t, http.StatusOK, resp.Code)
		var list []product.Product
		decodeData(t, resp, &list)
		require.Equal(t, tt.ids, productIDs(list), tt.target)
	}
}

func TestAdminProductDraft(t *testing.T) {
	f := newFixture(t)
	resp := serve(AdminProductDraft(f.editor, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var draft product.Product
	decodeData(t, resp, &draft)
	require.True(t, strings.HasPrefix(draft.ID, "new-"), draft.ID)
	require.Equal(t, product.TypeClothing, draft.Type)
	require.Equal(t, 10, draft.Stock)
}

func TestAdminProductSaveAndDelete(t *testing.T) {
	f := newFixture(t, sampleCatalog()...)
	save := AdminProductSave(f.editor, nil)

	resp := serve(save, httptest.NewRequest(http.MethodPut, "/api/admin/v1/products", jsonBody(t, map[string]any{
		"id":          "new-1-abc",
		"name":        "Sandália",
		"description": "Couro",
		"price":       90,
		"category":    "Calçados",
		"images":      []string{"", "https://img/s.jpg"},
	})))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result product.SaveResult
	decodeData(t, resp, &result)
	require.Equal(t, "new-1-abc", result.Product.ID)
	require.Equal(t, product.TypeShoes, result.Product.Type)
	require.Equal(t, "https://img/s.jpg", result.Product.ImageURL)
	require.Empty(t, result.Degradation)

	stored, ok := f.repo.GetByID(context.Background(), "new-1-abc")
	require.True(t, ok)
	require.Equal(t, "Sandália", stored.Name)

	resp = serve(save, httptest.NewRequest(http.MethodPut, "/", jsonBody(t, map[string]any{
		"name": "Sem imagem", "description": "x", "category": "feminino",
	})))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, resp))

	resp = serve(save, httptest.NewRequest(http.MethodPut, "/", jsonBody(t, map[string]any{
		"name": "Desconhecida", "description": "x", "category": "praia", "imageUrl": "https://img/x.jpg",
	})))
	require.Equal(t, http.StatusBadRequest, resp.Code)

	del := AdminProductDelete(f.editor, nil)
	resp = serve(del, withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "productId", "new-1-abc"))
	require.Equal(t, http.StatusNoContent, resp.Code)
	_, ok = f.repo.GetByID(context.Background(), "new-1-abc")
	require.False(t, ok)

	resp = serve(del, withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "productId", "new-1-abc"))
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminCategoriesIncludesCustomLinks(t *testing.T) {
	f := newFixture(t)
	settingsNow := f.settings.Load(context.Background())
	settingsNow.HeaderLinks.CustomLinks = append(settingsNow.HeaderLinks.CustomLinks,
		customLink("Praia", true), customLink("Inverno", false))
	_, err := f.settings.Save(context.Background(), settingsNow)
	require.NoError(t, err)

	resp := serve(AdminCategories(f.editor, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var categories []string
	decodeData(t, resp, &categories)
	require.Contains(t, categories, "praia")
	require.NotContains(t, categories, "inverno")
	require.Contains(t, categories, "feminino")
}
