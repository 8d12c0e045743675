package cart

import (
	"context"
	"sync"
	"testing"

	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, docs docstore.Store) *Store {
	t.Helper()
	store, err := NewStore(docs, nil, logger.Nop())
	require.NoError(t, err)
	return store
}

func line(id string, price, discount float64, qty int, size, color string) Item {
	return Item{
		Product:       product.Product{ID: id, Name: "Produto " + id, Price: price, Discount: discount},
		Quantity:      qty,
		SelectedSize:  size,
		SelectedColor: color,
	}
}

func TestNewStoreRequiresDocuments(t *testing.T) {
	if _, err := NewStore(nil, nil, nil); err == nil {
		t.Fatal("expected error without a document store")
	}
}

func TestKey(t *testing.T) {
	if got := Key(""); got != "cart" {
		t.Fatalf("expected default cart key, got %q", got)
	}
	if got := Key("abc"); got != "cart:abc" {
		t.Fatalf("unexpected cart key %q", got)
	}
	if err := ValidateID("abc-123_X"); err != nil {
		t.Fatalf("expected valid id, got %v", err)
	}
	if err := ValidateID("a:b"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddMergesSameIdentity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, docstore.NewMemory(0))

	_, err := store.Add(ctx, "", line("p1", 50, 0, 2, "M", "Preto"))
	require.NoError(t, err)
	cart, err := store.Add(ctx, "", line("p1", 50, 0, 3, "M", "Preto"))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
	require.Equal(t, 5, store.Get(ctx, "").Items[0].Quantity)
}

func TestAddKeepsDistinctIdentities(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, docstore.NewMemory(0))

	for _, item := range []Item{
		line("p1", 50, 0, 1, "M", "Preto"),
		line("p1", 50, 0, 1, "G", "Preto"),
		line("p1", 50, 0, 1, "M", ""),
		line("p2", 50, 0, 1, "M", "Preto"),
	} {
		_, err := store.Add(ctx, "", item)
		require.NoError(t, err)
	}
	cart := store.Get(ctx, "")
	require.Len(t, cart.Items, 4)
	require.Equal(t, 4, cart.Count)
}

func TestAddRejectsInvalidItems(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	store := newTestStore(t, docs)

	_, err := store.Add(ctx, "", line("p1", 10, 0, 0, "", ""))
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)
	_, err = store.Add(ctx, "", line(" ", 10, 0, 1, "", ""))
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)

	_, err = docs.Get(ctx, DocumentKey)
	require.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestTotal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, docstore.NewMemory(0))

	cart, err := store.Add(ctx, "", line("p1", 100, 10, 2, "", ""))
	require.NoError(t, err)
	require.Equal(t, "180.00", cart.Total.StringFixed(2))

	cart, err = store.Add(ctx, "", line("p2", 59.9, 0, 1, "", ""))
	require.NoError(t, err)
	require.Equal(t, "239.90", cart.Total.StringFixed(2))
}

func TestRemoveAndUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, docstore.NewMemory(0))
	_, err := store.Add(ctx, "", line("p1", 10, 0, 1, "M", "Preto"))
	require.NoError(t, err)
	_, err = store.Add(ctx, "", line("p1", 10, 0, 1, "G", "Preto"))
	require.NoError(t, err)

	cart, err := store.UpdateQuantity(ctx, "", Identity{ID: "p1", Size: "G", Color: "Preto"}, 4)
	require.NoError(t, err)
	require.Equal(t, 1, cart.Items[0].Quantity)
	require.Equal(t, 4, cart.Items[1].Quantity)

	for _, qty := range []int{0, -2} {
		cart, err = store.UpdateQuantity(ctx, "", Identity{ID: "p1", Size: "G", Color: "Preto"}, qty)
		require.NoError(t, err)
		require.Equal(t, 4, cart.Items[1].Quantity)
	}

	cart, err = store.Remove(ctx, "", Identity{ID: "p1", Size: "M"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2, "color must match too")

	cart, err = store.Remove(ctx, "", Identity{ID: "p1", Size: "M", Color: "Preto"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "G", store.Get(ctx, "").Items[0].SelectedSize)
}

func TestClearAndSeparateCarts(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	store := newTestStore(t, docs)

	_, err := store.Add(ctx, "", line("p1", 10, 0, 1, "", ""))
	require.NoError(t, err)
	_, err = store.Add(ctx, "tab-2", line("p2", 10, 0, 1, "", ""))
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, ""))
	require.Empty(t, store.Get(ctx, "").Items)
	require.Len(t, store.Get(ctx, "tab-2").Items, 1)

	raw, err := docs.Get(ctx, DocumentKey)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}

func TestCorruptCartIsEmpty(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(0)
	require.NoError(t, docs.Put(ctx, DocumentKey, []byte(`{"not":"a list"}`)))
	store := newTestStore(t, docs)

	cart := store.Get(ctx, "")
	require.Empty(t, cart.Items)
	require.True(t, cart.Total.IsZero())

	cart, err := store.Add(ctx, "", line("p1", 10, 0, 1, "", ""))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestQuotaLeavesPreviousCart(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemory(600)
	store := newTestStore(t, docs)

	_, err := store.Add(ctx, "", line("p1", 10, 0, 1, "", ""))
	require.NoError(t, err)

	big := line("p2", 10, 0, 1, "", "")
	big.Description = string(make([]byte, 1024))
	_, err = store.Add(ctx, "", big)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStorageQuota), "got %v", err)
	require.Len(t, store.Get(ctx, "").Items, 1)
}

func TestOnChangeNotifiesOtherOrigins(t *testing.T) {
	ctx := context.Background()
	broker := events.NewMemoryBroker()
	docs := docstore.Notifying(docstore.NewMemory(0), broker, logger.Nop(), nil)
	store, err := NewStore(docs, broker, logger.Nop())
	require.NoError(t, err)

	var seen []Cart
	stop := store.OnChange("tab-b", "", func(c Cart) { seen = append(seen, c) })
	defer stop()

	_, err = store.Add(events.WithOrigin(ctx, "tab-a"), "", line("p1", 10, 0, 2, "", ""))
	require.NoError(t, err)
	_, err = store.Add(events.WithOrigin(ctx, "tab-b"), "", line("p1", 10, 0, 1, "", ""))
	require.NoError(t, err)

	require.Len(t, seen, 1)
	require.Equal(t, 2, seen[0].Items[0].Quantity)
}

func TestConcurrentAddsToOneCartKeepEveryUnit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, docstore.NewMemory(0))

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Add(ctx, "shared", line("p1", 10, 0, 1, "M", "Preto"))
			if err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got := store.Get(ctx, "shared")
	require.Len(t, got.Items, 1)
	require.Equal(t, writers, got.Items[0].Quantity)
}
