// Package product reads and writes the storefront catalog document and hosts
// the admin editing workflow on top of it.
package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// DocumentKey is the canonical storage key of the catalog.
const DocumentKey = "products"

// Repository loads and persists the full product list as one document.
// Nothing is cached: every read goes back to the store.
type Repository struct {
	docs      docstore.Store
	broker    events.Broker
	legacyKey string
	logg      *logger.Logger
}

// NewRepository builds a catalog repository. broker may be nil and legacyKey
// may be empty when there is no older catalog document to migrate.
func NewRepository(docs docstore.Store, broker events.Broker, legacyKey string, logg *logger.Logger) (*Repository, error) {
	if docs == nil {
		return nil, fmt.Errorf("document store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Repository{docs: docs, broker: broker, legacyKey: legacyKey, logg: logg}, nil
}

// GetAll returns the stored catalog with numeric and boolean fields coerced.
// A missing, unreadable or non-array document yields MockProducts.
func (r *Repository) GetAll(ctx context.Context) []Product {
	ctx = r.logg.WithDocumentKey(ctx, DocumentKey)

	raw, err := r.docs.Get(ctx, DocumentKey)
	if errors.Is(err, docstore.ErrNotFound) {
		return MockProducts()
	}
	if err != nil {
		r.logg.WarnErr(ctx, "products.load_failed", err)
		return MockProducts()
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return MockProducts()
	}

	items, err := decodeList(raw)
	if err != nil {
		r.logg.WarnErr(ctx, "products.parse_failed", err)
		return MockProducts()
	}

	out := make([]Product, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			r.logg.Warn(r.logg.WithField(ctx, "index", i), "products.entry_skipped")
			continue
		}
		out = append(out, coerceProduct(obj))
	}
	return out
}

// Save replaces the stored catalog. A full store is reported as
// STORAGE_QUOTA_EXCEEDED so callers can degrade and retry.
func (r *Repository) Save(ctx context.Context, products []Product) error {
	ctx = r.logg.WithDocumentKey(ctx, DocumentKey)

	raw, err := encodeList(products)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode products")
	}
	if err := r.docs.Put(ctx, DocumentKey, raw); err != nil {
		if docstore.IsQuotaExceeded(err) {
			return pkgerrors.Wrap(pkgerrors.CodeStorageQuota, err, "products do not fit in storage").
				WithDetails(map[string]any{"products": len(products), "bytes": len(raw)})
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
	}
	return nil
}

// MigrateLegacyKey moves a catalog stored under the legacy admin key to the
// canonical key. It does nothing once the canonical document exists.
func (r *Repository) MigrateLegacyKey(ctx context.Context) (bool, error) {
	if r.legacyKey == "" || r.legacyKey == DocumentKey {
		return false, nil
	}
	ctx = r.logg.WithField(ctx, "legacy_key", r.legacyKey)

	if _, err := r.docs.Get(ctx, DocumentKey); err == nil {
		return false, nil
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products")
	}

	raw, err := r.docs.Get(ctx, r.legacyKey)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read legacy products")
	}
	if _, err := decodeList(raw); err != nil {
		r.logg.WarnErr(ctx, "products.legacy_ignored", err)
		return false, nil
	}

	if err := r.docs.Put(ctx, DocumentKey, raw); err != nil {
		if docstore.IsQuotaExceeded(err) {
			return false, pkgerrors.Wrap(pkgerrors.CodeStorageQuota, err, "legacy products do not fit in storage")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write products")
	}
	if err := r.docs.Delete(ctx, r.legacyKey); err != nil {
		r.logg.WarnErr(ctx, "products.legacy_delete_failed", err)
	}
	r.logg.Info(ctx, "products.legacy_migrated")
	return true, nil
}

// OnChange calls fn with the reloaded catalog whenever another origin rewrites it.
func (r *Repository) OnChange(origin string, fn func([]Product)) func() {
	if r.broker == nil || fn == nil {
		return func() {}
	}
	return r.broker.OnDocumentChanged(origin, DocumentKey, func(events.Change) {
		fn(r.GetAll(context.Background()))
	})
}

// GetByID returns the product with exactly this id.
func (r *Repository) GetByID(ctx context.Context, id string) (Product, bool) {
	return FindByID(r.GetAll(ctx), id)
}

// ByCategory returns products filed under category; an empty category returns everything.
func (r *Repository) ByCategory(ctx context.Context, category string) []Product {
	return FilterByCategory(r.GetAll(ctx), category)
}

// ByType returns products of exactly this type.
func (r *Repository) ByType(ctx context.Context, t Type) []Product {
	return FilterByType(r.GetAll(ctx), t)
}

// Featured returns products flagged as featured.
func (r *Repository) Featured(ctx context.Context) []Product {
	return FilterFeatured(r.GetAll(ctx))
}

// Discounted returns products with a positive discount.
func (r *Repository) Discounted(ctx context.Context) []Product {
	return FilterDiscounted(r.GetAll(ctx))
}

// NewArrivals returns the head of the catalog.
func (r *Repository) NewArrivals(ctx context.Context) []Product {
	return NewArrivals(r.GetAll(ctx))
}

func decodeList(raw []byte) ([]any, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	items, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("products document is %T, not an array", decoded)
	}
	return items, nil
}

func encodeList(products []Product) ([]byte, error) {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = withEmptySlices(p)
	}
	return json.Marshal(out)
}

func withEmptySlices(p Product) Product {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return p
}
