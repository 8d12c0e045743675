package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/validation"
)

const (
	// DocumentKey stores the default cart.
	DocumentKey = "cart"

	maxCartIDLength = 64
	lockStripes     = 64
)

// Store reads and rewrites carts. Every mutation persists the whole line list.
// Mutations of one cart are serialized within the process; writers in other
// processes still follow last-write-wins.
type Store struct {
	docs   docstore.Store
	broker events.Broker
	logg   *logger.Logger
	locks  [lockStripes]sync.Mutex
}

func NewStore(docs docstore.Store, broker events.Broker, logg *logger.Logger) (*Store, error) {
	if docs == nil {
		return nil, fmt.Errorf("document store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{docs: docs, broker: broker, logg: logg}, nil
}

// Key returns the document key of a cart. The empty id is the default cart.
func Key(cartID string) string {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return DocumentKey
	}
	return DocumentKey + ":" + cartID
}

// ValidateID rejects cart ids that cannot be used as a document key suffix.
func ValidateID(cartID string) error {
	if len(cartID) > maxCartIDLength {
		return validation.Fields(map[string]string{"cartId": fmt.Sprintf("must be at most %d characters", maxCartIDLength)})
	}
	for _, r := range cartID {
		if !(r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return validation.Fields(map[string]string{"cartId": "may only contain letters, digits, '-' and '_'"})
		}
	}
	return nil
}

// Get returns the cart with its derived total. Unreadable carts are empty.
func (s *Store) Get(ctx context.Context, cartID string) Cart {
	ctx, key := s.scope(ctx, cartID)
	return newCart(s.load(ctx, key))
}

// Add merges item into the line with the same identity or appends it.
func (s *Store) Add(ctx context.Context, cartID string, item Item) (Cart, error) {
	if err := validation.Struct(item); err != nil {
		return Cart{}, err
	}
	if strings.TrimSpace(item.ID) == "" {
		return Cart{}, validation.Fields(map[string]string{"id": "is required"})
	}
	ctx, key := s.scope(ctx, cartID)
	defer s.lock(key)()

	items := s.load(ctx, key)
	merged := false
	for i := range items {
		if items[i].Identity() == item.Identity() {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.save(ctx, key, items); err != nil {
		return Cart{}, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": item.ID,
		"quantity":   item.Quantity,
		"merged":     merged,
	}), "cart.item_added")
	return newCart(items), nil
}

// Remove drops every line matching the identity exactly.
func (s *Store) Remove(ctx context.Context, cartID string, id Identity) (Cart, error) {
	ctx, key := s.scope(ctx, cartID)
	defer s.lock(key)()

	items := s.load(ctx, key)
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Identity() != id {
			kept = append(kept, item)
		}
	}

	if err := s.save(ctx, key, kept); err != nil {
		return Cart{}, err
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.ID), "cart.item_removed")
	return newCart(kept), nil
}

// UpdateQuantity replaces the quantity of the matching line. Non-positive
// quantities are ignored and nothing is written.
func (s *Store) UpdateQuantity(ctx context.Context, cartID string, id Identity, quantity int) (Cart, error) {
	ctx, key := s.scope(ctx, cartID)
	defer s.lock(key)()

	items := s.load(ctx, key)
	if quantity <= 0 {
		s.logg.Debug(s.logg.WithField(ctx, "quantity", quantity), "cart.quantity_ignored")
		return newCart(items), nil
	}

	changed := false
	for i := range items {
		if items[i].Identity() == id {
			items[i].Quantity = quantity
			changed = true
		}
	}
	if !changed {
		return newCart(items), nil
	}

	if err := s.save(ctx, key, items); err != nil {
		return Cart{}, err
	}
	return newCart(items), nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	ctx, key := s.scope(ctx, cartID)
	defer s.lock(key)()
	if err := s.save(ctx, key, []Item{}); err != nil {
		return err
	}
	s.logg.Info(ctx, "cart.cleared")
	return nil
}

// OnChange calls fn with the reloaded cart whenever another origin rewrites it.
func (s *Store) OnChange(origin, cartID string, fn func(Cart)) func() {
	if s.broker == nil || fn == nil {
		return func() {}
	}
	return s.broker.OnDocumentChanged(origin, Key(cartID), func(events.Change) {
		fn(s.Get(context.Background(), cartID))
	})
}

// lock holds the stripe guarding key and returns its release.
func (s *Store) lock(key string) func() {
	mu := &s.locks[xxhash.Sum64String(key)%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *Store) scope(ctx context.Context, cartID string) (context.Context, string) {
	key := Key(cartID)
	return s.logg.WithDocumentKey(ctx, key), key
}

func (s *Store) load(ctx context.Context, key string) []Item {
	raw, err := s.docs.Get(ctx, key)
	if errors.Is(err, docstore.ErrNotFound) {
		return []Item{}
	}
	if err != nil {
		s.logg.WarnErr(ctx, "cart.load_failed", err)
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logg.WarnErr(ctx, "cart.parse_failed", err)
		return []Item{}
	}
	if items == nil {
		items = []Item{}
	}
	return items
}

func (s *Store) save(ctx context.Context, key string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.docs.Put(ctx, key, raw); err != nil {
		if docstore.IsQuotaExceeded(err) {
			s.logg.WarnErr(ctx, "cart.save_quota_exceeded", err)
			return pkgerrors.Wrap(pkgerrors.CodeStorageQuota, err, "cart does not fit in storage")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}
