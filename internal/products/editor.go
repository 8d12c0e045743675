package product

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/category"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/validation"
	nanoid "github.com/jaevor/go-nanoid"
)

const (
	draftIDPrefix   = "new-"
	draftIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	draftIDLength   = 6

	// AllCategories selects every product in the admin listing.
	AllCategories = "all"
)

// Degradation names the step that made a save fit in storage.
type Degradation string

const (
	DegradationNone          Degradation = ""
	DegradationImagesTrimmed Degradation = "images_trimmed"
	DegradationTruncated     Degradation = "truncated"
)

// CustomCategorySource lists the category slugs enabled in the store settings.
type CustomCategorySource interface {
	CustomCategories(ctx context.Context) []string
}

// ProductInput is the admin form payload for creating or replacing a product.
type ProductInput struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required,max=5000"`
	Price          float64  `json:"price" validate:"gte=0"`
	Discount       float64  `json:"discount" validate:"gte=0,lte=100"`
	ImageURL       string   `json:"imageUrl"`
	Images         []string `json:"images"`
	Category       string   `json:"category" validate:"required"`
	Type           Type     `json:"type" validate:"omitempty,oneof=clothing shoes accessory"`
	Sizes          []string `json:"sizes"`
	Colors         []string `json:"colors"`
	Stock          int      `json:"stock" validate:"gte=0"`
	Featured       bool     `json:"featured"`
	ShowOnHomepage bool     `json:"showOnHomepage"`
}

// SaveResult reports what was persisted and how much had to be given up.
type SaveResult struct {
	Product     Product     `json:"product"`
	Degradation Degradation `json:"degradation,omitempty"`
	Dropped     int         `json:"dropped,omitempty"`
}

// Editor implements the admin product workflow over the catalog document.
type Editor struct {
	repo         *Repository
	categories   CustomCategorySource
	logg         *logger.Logger
	maxSecondary int
	truncateKeep int
	now          func() time.Time
	suffix       func() string
}

func NewEditor(repo *Repository, categories CustomCategorySource, cfg config.CatalogConfig, logg *logger.Logger) (*Editor, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("custom category source required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	suffix, err := nanoid.CustomASCII(draftIDAlphabet, draftIDLength)
	if err != nil {
		return nil, fmt.Errorf("draft id generator: %w", err)
	}
	keep := cfg.TruncateKeep
	if keep <= 0 {
		keep = config.DefaultCatalogTruncateKeep
	}
	maxSecondary := cfg.MaxSecondaryImages
	if maxSecondary < 0 {
		maxSecondary = 0
	}
	return &Editor{
		repo:         repo,
		categories:   categories,
		logg:         logg,
		maxSecondary: maxSecondary,
		truncateKeep: keep,
		now:          time.Now,
		suffix:       suffix,
	}, nil
}

// NewDraft returns the blank product the admin form starts from.
func (e *Editor) NewDraft() Product {
	return Product{
		ID:     e.newID(),
		Type:   TypeClothing,
		Images: []string{},
		Sizes:  []string{"P", "M", "G"},
		Colors: []string{"Preto", "Branco"},
		Stock:  10,
	}
}

func (e *Editor) newID() string {
	return draftIDPrefix + strconv.FormatInt(e.now().UnixMilli(), 10) + "-" + e.suffix()
}

// Save validates in, upserts it by id and persists the whole catalog. When the
// catalog does not fit, the saved product's secondary images are trimmed, then
// only the saved product and the most recent others are kept, before giving up with
// STORAGE_QUOTA_EXCEEDED. Nothing is written when validation fails.
func (e *Editor) Save(ctx context.Context, in ProductInput) (SaveResult, error) {
	p, err := e.prepare(ctx, in)
	if err != nil {
		return SaveResult{}, err
	}
	ctx = e.logg.WithField(ctx, "product_id", p.ID)

	list := e.repo.GetAll(ctx)
	idx := -1
	for i := range list {
		if list[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		list[idx] = p
	} else {
		list = append(list, p)
		idx = len(list) - 1
	}

	err = e.repo.Save(ctx, list)
	if err == nil {
		e.logg.Info(ctx, "products.saved")
		return SaveResult{Product: p}, nil
	}
	if !pkgerrors.HasCode(err, pkgerrors.CodeStorageQuota) {
		return SaveResult{}, err
	}

	if len(p.Images) > e.maxSecondary {
		e.logg.WarnErr(ctx, "products.save_trimming_images", err)
		p.Images = cloneStrings(p.Images[:e.maxSecondary])
		list[idx] = p
		if err = e.repo.Save(ctx, list); err == nil {
			return SaveResult{Product: p, Degradation: DegradationImagesTrimmed}, nil
		}
		if !pkgerrors.HasCode(err, pkgerrors.CodeStorageQuota) {
			return SaveResult{}, err
		}
	}

	if len(list) > e.truncateKeep {
		kept := keepRecent(list, idx, e.truncateKeep)
		dropped := len(list) - len(kept)
		e.logg.WarnErr(e.logg.WithField(ctx, "dropped", dropped), "products.save_truncating", err)
		if err = e.repo.Save(ctx, kept); err == nil {
			return SaveResult{Product: p, Degradation: DegradationTruncated, Dropped: dropped}, nil
		}
		if !pkgerrors.HasCode(err, pkgerrors.CodeStorageQuota) {
			return SaveResult{}, err
		}
	}

	e.logg.Error(ctx, "products.save_quota_exhausted", err)
	return SaveResult{}, pkgerrors.Wrap(pkgerrors.CodeStorageQuota, err, "storage is full; remove products or images and try again")
}

// keepRecent keeps the product at idx plus the last keep-1 others, in list order.
func keepRecent(list []Product, idx, keep int) []Product {
	start := len(list) - (keep - 1)
	if idx >= start {
		start--
	}
	kept := make([]Product, 0, keep)
	for i, p := range list {
		if i == idx || i >= start {
			kept = append(kept, p)
		}
	}
	return kept
}

// Delete removes the product with id and persists the catalog.
func (e *Editor) Delete(ctx context.Context, id string) error {
	list := e.repo.GetAll(ctx)
	kept := filter(list, func(p Product) bool { return p.ID != id })
	if len(kept) == len(list) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err := e.repo.Save(ctx, kept); err != nil {
		return err
	}
	e.logg.Info(e.logg.WithField(ctx, "product_id", id), "products.deleted")
	return nil
}

// List returns the admin table rows for cat. Shoes and accessories also match
// by product type so mis-filed items stay visible.
func (e *Editor) List(ctx context.Context, cat string) []Product {
	return AdminFilter(e.repo.GetAll(ctx), cat)
}

// Categories returns the built-in categories followed by enabled custom ones.
func (e *Editor) Categories(ctx context.Context) []string {
	out := append([]string{}, category.BuiltIn...)
	for _, slug := range e.categories.CustomCategories(ctx) {
		if !category.IsBuiltIn(slug) {
			out = append(out, slug)
		}
	}
	return out
}

// AdminFilter applies the admin listing rules to products.
func AdminFilter(products []Product, cat string) []Product {
	token := category.Normalize(cat)
	if token == "" || token == AllCategories {
		return products
	}
	return filter(products, func(p Product) bool {
		switch token {
		case category.Calcados:
			return category.Equal(p.Category, token) || p.Type == TypeShoes
		case category.Acessorios:
			return category.Equal(p.Category, token) || p.Type == TypeAccessory
		}
		return category.Equal(p.Category, token)
	})
}

func (e *Editor) prepare(ctx context.Context, in ProductInput) (Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := validation.Struct(in); err != nil {
		return Product{}, err
	}

	primary, secondary := splitImages(in.ImageURL, in.Images)
	if primary == "" {
		return Product{}, validation.Fields(map[string]string{"imageUrl": "at least one image is required"})
	}

	cat, ok := e.resolveCategory(ctx, in.Category)
	if !ok {
		return Product{}, validation.Fields(map[string]string{"category": "must be a built-in category or an enabled custom link"})
	}

	typ, typeChanged := alignType(cat, in.Type)
	sizes := compact(in.Sizes)
	if typeChanged && len(sizes) == 0 {
		sizes = category.DefaultSizes(typ)
	}
	colors := compact(in.Colors)
	if len(colors) == 0 {
		colors = []string{"Preto"}
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = e.newID()
	}

	return Product{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Discount:       in.Discount,
		ImageURL:       primary,
		Images:         secondary,
		Category:       cat,
		Type:           typ,
		Sizes:          sizes,
		Colors:         colors,
		Stock:          in.Stock,
		Featured:       in.Featured,
		ShowOnHomepage: in.ShowOnHomepage,
	}, nil
}

// resolveCategory normalizes raw and accepts it when it is built in or matches
// an enabled custom link. Custom categories are stored as their slug.
func (e *Editor) resolveCategory(ctx context.Context, raw string) (string, bool) {
	cat := category.Normalize(raw)
	if category.IsBuiltIn(cat) {
		return cat, true
	}
	slug := category.Slugify(cat)
	for _, custom := range e.categories.CustomCategories(ctx) {
		if custom == cat || custom == slug {
			return custom, true
		}
	}
	return "", false
}

// alignType returns the type a category requires. Categories without a fixed
// type keep the given one, or clothing when none was given.
func alignType(cat string, given Type) (Type, bool) {
	if required, ok := category.TypeFor(cat); ok {
		return required, required != given
	}
	if given == "" {
		return TypeClothing, true
	}
	return given, false
}

// splitImages picks the first non-empty slot as the primary image and keeps
// the other distinct non-empty slots as secondary images.
func splitImages(imageURL string, images []string) (string, []string) {
	slots := append([]string{imageURL}, images...)
	primary := ""
	secondary := []string{}
	seen := map[string]struct{}{}
	for _, slot := range slots {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}
		if primary == "" {
			primary = slot
			seen[slot] = struct{}{}
			continue
		}
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		secondary = append(secondary, slot)
	}
	return primary, secondary
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
