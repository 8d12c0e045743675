package browse

import (
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/shopspring/decimal"
)

// View holds the state of one listing page over a catalog snapshot. Choosing
// the category or the search recomputes the price bounds and resets the
// selected range to them; the sort order survives.
type View struct {
	catalog  []product.Product
	category string
	search   string
	base     []product.Product
	bounds   PriceRange
	selected PriceRange
	sort     Sort
}

// NewView lists catalog for a category token and search text.
func NewView(catalog []product.Product, category, search string) *View {
	v := &View{catalog: catalog, category: category, search: search, sort: SortDefault}
	v.rebase()
	return v
}

func (v *View) SetCategory(token string) {
	v.category = token
	v.rebase()
}

func (v *View) SetSearch(search string) {
	v.search = search
	v.rebase()
}

// SetRange selects a price range within which products are listed.
func (v *View) SetRange(r PriceRange) {
	v.selected = r
}

// SetEnds selects a range from optional ends; a missing end stays at the
// current bounds.
func (v *View) SetEnds(lo, hi *decimal.Decimal) {
	r := v.bounds
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	v.selected = r
}

// SetSort picks the order; the empty sort is SortDefault.
func (v *View) SetSort(s Sort) {
	if s == "" {
		s = SortDefault
	}
	v.sort = s
}

// FiltersActive reports whether the range or the order differ from the defaults.
func (v *View) FiltersActive() bool {
	return !v.selected.Equal(v.bounds) || v.sort != SortDefault
}

func (v *View) Bounds() PriceRange {
	return v.bounds
}

func (v *View) Range() PriceRange {
	return v.selected
}

// Result lists the products for the current state.
func (v *View) Result() Result {
	listed := SortStage(PriceStage(v.base, v.selected), v.sort)
	return Result{
		Products:      listed,
		Count:         len(listed),
		Bounds:        v.bounds,
		Range:         v.selected,
		Sort:          v.sort,
		Title:         Title(v.category, v.search),
		FiltersActive: v.FiltersActive(),
	}
}

func (v *View) rebase() {
	v.base = SearchStage(CategoryStage(v.catalog, v.category), v.search)
	v.bounds = Bounds(v.base)
	v.selected = v.bounds
}
