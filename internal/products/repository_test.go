package product

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, docs docstore.Store) *Repository {
	t.Helper()
	repo, err := NewRepository(docs, nil, "storeProducts", logger.Nop())
	require.NoError(t, err)
	return repo
}

func TestNewRepositoryRequiresStore(t *testing.T) {
	if _, err := NewRepository(nil, nil, "", nil); err == nil {
		t.Fatal("expected error without a document store")
	}
}

func TestGetAllFallsBackToMocks(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"garbage":    `{not json`,
		"object":     `{"id":"x"}`,
		"whitespace": `   `,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			docs := docstore.NewMemory(0)
			require.NoError(t, docs.Put(ctx, DocumentKey, []byte(raw)))
			got := newTestRepository(t, docs).GetAll(ctx)
			require.Len(t, got, len(mockProducts))
		})
	}

	t.Run("missing", func(t *testing.T) {
		got := newTestRepository(t, docstore.NewMemory(0)).GetAll(ctx)
		require.Len(t, got, 17)
		require.Equal(t, "f1", got[0].ID)
		require.True(t, got[0].ShowOnHomepage)
		require.False(t, got[2].ShowOnHomepage)
	})
}

func TestGetAllCoercesStoredEntries(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	raw := `[{"id":"a","price":"100","discount":null,"stock":"3","featured":1},"junk",{"id":"b","price":20}]`
	require.NoError(t, docs.Put(ctx, DocumentKey, []byte(raw)))

	got := newTestRepository(t, docs).GetAll(ctx)
	require.Len(t, got, 2)
	require.Equal(t, 100.0, got[0].Price)
	require.Equal(t, 0.0, got[0].Discount)
	require.Equal(t, 3, got[0].Stock)
	require.True(t, got[0].Featured)
	require.False(t, got[0].ShowOnHomepage)
	require.Equal(t, "b", got[1].ID)
}

func TestGetAllReturnsEmptyStoredCatalog(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	require.NoError(t, docs.Put(ctx, DocumentKey, []byte(`[]`)))
	require.Empty(t, newTestRepository(t, docs).GetAll(ctx))
}

func TestSaveRoundTripsAndReportsQuota(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, docstore.NewMemory(0))
	in := []Product{{ID: "p1", Name: "Bota", Price: 199.9, Discount: 25, Category: "calçados", Type: TypeShoes}}
	require.NoError(t, repo.Save(ctx, in))

	got := repo.GetAll(ctx)
	require.Len(t, got, 1)
	require.Equal(t, "p1", got[0].ID)
	require.NotNil(t, got[0].Images)

	small := newTestRepository(t, docstore.NewMemory(32))
	err := small.Save(ctx, MockProducts())
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStorageQuota), "got %v", err)
	require.Len(t, small.GetAll(ctx), len(mockProducts))
}

func TestCatalogQueries(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	repo := newTestRepository(t, docs)
	require.NoError(t, repo.Save(ctx, []Product{
		{ID: "p1", Category: "Feminino", Discount: 0, Type: TypeClothing, Featured: true},
		{ID: "p2", Category: "calcados", Discount: 5, Type: TypeShoes},
		{ID: "p3", Category: "Calçados", Discount: 30, Type: TypeShoes},
		{ID: "p4", Category: "acessórios", Type: TypeAccessory, Featured: true},
		{ID: "p5", Category: "kids", Type: TypeClothing},
	}))

	discounted := repo.Discounted(ctx)
	require.Len(t, discounted, 2)
	require.Equal(t, "p2", discounted[0].ID)
	require.Equal(t, "p3", discounted[1].ID)

	require.Len(t, repo.ByCategory(ctx, "calçados"), 2)
	require.Len(t, repo.ByCategory(ctx, "shoes"), 2)
	require.Len(t, repo.ByCategory(ctx, ""), 5)
	require.Len(t, repo.ByType(ctx, TypeClothing), 2)
	require.Len(t, repo.Featured(ctx), 2)

	arrivals := repo.NewArrivals(ctx)
	require.Len(t, arrivals, 4)
	require.Equal(t, "p4", arrivals[3].ID)

	p, ok := repo.GetByID(ctx, "p3")
	require.True(t, ok)
	require.Equal(t, 30.0, p.Discount)
	_, ok = repo.GetByID(ctx, "P3")
	require.False(t, ok)
}

func TestMigrateLegacyKey(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	require.NoError(t, docs.Put(ctx, "storeProducts", []byte(`[{"id":"legacy","price":10}]`)))
	repo := newTestRepository(t, docs)

	moved, err := repo.MigrateLegacyKey(ctx)
	require.NoError(t, err)
	require.True(t, moved)

	_, err = docs.Get(ctx, "storeProducts")
	require.ErrorIs(t, err, docstore.ErrNotFound)
	got := repo.GetAll(ctx)
	require.Len(t, got, 1)
	require.Equal(t, "legacy", got[0].ID)

	require.NoError(t, docs.Put(ctx, "storeProducts", []byte(`[{"id":"stale"}]`)))
	moved, err = repo.MigrateLegacyKey(ctx)
	require.NoError(t, err)
	require.False(t, moved, "canonical document wins once present")
}

func TestMigrateLegacyKeyIgnoresNonArrays(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	require.NoError(t, docs.Put(ctx, "storeProducts", []byte(`{"id":"x"}`)))

	moved, err := newTestRepository(t, docs).MigrateLegacyKey(ctx)
	require.NoError(t, err)
	require.False(t, moved)
	_, err = docs.Get(ctx, DocumentKey)
	require.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestOnChangeReloadsForPeers(t *testing.T) {
	ctx := context.Background()
	broker := events.NewMemoryBroker()
	docs := docstore.Notifying(docstore.NewMemory(0), broker, logger.Nop(), nil)
	repo, err := NewRepository(docs, broker, "", logger.Nop())
	require.NoError(t, err)

	var peer, writer [][]Product
	stopPeer := repo.OnChange("tab-b", func(p []Product) { peer = append(peer, p) })
	defer stopPeer()
	stopWriter := repo.OnChange("tab-a", func(p []Product) { writer = append(writer, p) })
	defer stopWriter()

	require.NoError(t, repo.Save(events.WithOrigin(ctx, "tab-a"), []Product{{ID: "only"}}))

	require.Len(t, peer, 1)
	require.Len(t, peer[0], 1)
	require.Equal(t, "only", peer[0][0].ID)
	require.Empty(t, writer, "the writer does not hear its own write")
}
