// Package settings loads and saves the storefront configuration document.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/category"
	"github.com/angelmondragon/storefront-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/events"
	"github.com/angelmondragon/storefront-backend/pkg/jsonmerge"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/validation"
)

// DocumentKey is the storage key holding the settings document.
const DocumentKey = "storeSettings"

// Store reads the settings document merged over Defaults and writes it back whole.
type Store struct {
	docs   docstore.Store
	broker events.Broker
	logg   *logger.Logger
}

// NewStore builds a settings store. broker may be nil when no one listens for changes.
func NewStore(docs docstore.Store, broker events.Broker, logg *logger.Logger) (*Store, error) {
	if docs == nil {
		return nil, fmt.Errorf("document store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{docs: docs, broker: broker, logg: logg}, nil
}

// Load returns the stored settings merged over the defaults. Missing, corrupt or
// undecodable documents yield Defaults; read failures are logged, never returned.
func (s *Store) Load(ctx context.Context) StoreSettings {
	ctx = s.logg.WithDocumentKey(ctx, DocumentKey)

	raw, err := s.docs.Get(ctx, DocumentKey)
	if errors.Is(err, docstore.ErrNotFound) {
		return Defaults()
	}
	if err != nil {
		s.logg.WarnErr(ctx, "settings.load_failed", err)
		return Defaults()
	}

	var stored any
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logg.WarnErr(ctx, "settings.parse_failed", err)
		return Defaults()
	}
	storedObj, ok := stored.(map[string]any)
	if !ok {
		s.logg.WarnErr(ctx, "settings.parse_failed", fmt.Errorf("stored settings is %T, not an object", stored))
		return Defaults()
	}

	shape, err := jsonmerge.ToMap(shapeDocument())
	if err != nil {
		s.logg.Error(ctx, "settings.shape_encode_failed", err)
		return Defaults()
	}
	conformed, dropped := jsonmerge.Conform(storedObj, shape)
	if len(dropped) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped", dropped), "settings.mistyped_fields_ignored")
	}

	merged, err := Merge(Defaults(), conformed)
	if err != nil {
		s.logg.WarnErr(ctx, "settings.decode_failed", err)
		return Defaults()
	}
	return merged
}

// Merge lays a partial settings document over current. Objects merge key by
// key; arrays and scalars in patch replace the current value whole.
func Merge(current StoreSettings, patch map[string]any) (StoreSettings, error) {
	base, err := jsonmerge.ToMap(current)
	if err != nil {
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode settings")
	}
	var out StoreSettings
	if err := jsonmerge.Decode(jsonmerge.DeepMerge(base, patch), &out); err != nil {
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "settings do not match the expected shape")
	}
	return fillNilSlices(out), nil
}

// shapeDocument is Defaults with one zero element in every list, so element
// kinds can be checked too.
func shapeDocument() StoreSettings {
	shape := Defaults()
	shape.HeaderLinks.CustomLinks = []CustomLink{{}}
	shape.CategoryHighlights.Categories = []HighlightedEntry{{}}
	return shape
}

// Save sanitizes and validates settings, then replaces the stored document.
// The saved value is returned so same-origin callers can propagate it; peers
// learn about the write through the broker.
func (s *Store) Save(ctx context.Context, in StoreSettings) (StoreSettings, error) {
	ctx = s.logg.WithDocumentKey(ctx, DocumentKey)

	out := Sanitize(in)
	if err := validation.Struct(out); err != nil {
		return StoreSettings{}, err
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode settings")
	}
	if err := s.docs.Put(ctx, DocumentKey, raw); err != nil {
		if docstore.IsQuotaExceeded(err) {
			s.logg.WarnErr(ctx, "settings.save_quota_exceeded", err)
			return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeStorageQuota, err, "settings do not fit in storage")
		}
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}

	s.logg.Info(ctx, "settings.saved")
	return out, nil
}

// OnChange calls fn with freshly loaded settings whenever another origin rewrites them.
func (s *Store) OnChange(origin string, fn func(StoreSettings)) func() {
	if s.broker == nil || fn == nil {
		return func() {}
	}
	return s.broker.OnDocumentChanged(origin, DocumentKey, func(events.Change) {
		fn(s.Load(context.Background()))
	})
}

// CustomCategories returns the slugs of enabled custom header links from the
// current settings.
func (s *Store) CustomCategories(ctx context.Context) []string {
	return s.Load(ctx).CustomCategories()
}

// CustomCategories returns the slugs of enabled custom header links, deduplicated
// and in declaration order.
func (ss StoreSettings) CustomCategories() []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, link := range ss.HeaderLinks.CustomLinks {
		if !link.Enabled {
			continue
		}
		slug := category.Slugify(link.Label)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

// HighlightLink derives the product listing path for a highlighted category name.
func HighlightLink(name string) string {
	folded := category.StripAccents(name)
	return "/products/" + strings.Join(strings.Fields(folded), "-")
}

// Sanitize fixes category-highlight images and links entered without a scheme:
// "www." gains "https://" and bare paths gain a leading "/". Data URIs and
// absolute URLs are kept.
func Sanitize(in StoreSettings) StoreSettings {
	out := fillNilSlices(in)
	out.SchemaVersion = SchemaVersion

	entries := make([]HighlightedEntry, len(out.CategoryHighlights.Categories))
	for i, entry := range out.CategoryHighlights.Categories {
		image := entry.Image
		if image != "" && !strings.HasPrefix(image, "data:") && !strings.HasPrefix(image, "http") {
			if strings.HasPrefix(image, "www.") {
				image = "https://" + image
			}
		}

		link := entry.Link
		if link == "" && strings.TrimSpace(entry.Name) != "" {
			link = HighlightLink(entry.Name)
		}
		if link != "" && !strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "http") {
			if strings.HasPrefix(link, "www.") {
				link = "https://" + link
			} else {
				link = "/" + link
			}
		}

		entries[i] = HighlightedEntry{Name: entry.Name, Image: image, Link: link}
	}
	out.CategoryHighlights.Categories = entries

	links := make([]CustomLink, len(out.HeaderLinks.CustomLinks))
	copy(links, out.HeaderLinks.CustomLinks)
	out.HeaderLinks.CustomLinks = links
	return out
}

func fillNilSlices(s StoreSettings) StoreSettings {
	if s.HeaderLinks.CustomLinks == nil {
		s.HeaderLinks.CustomLinks = []CustomLink{}
	}
	if s.CategoryHighlights.Categories == nil {
		s.CategoryHighlights.Categories = []HighlightedEntry{}
	}
	return s
}
