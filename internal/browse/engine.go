// Package browse turns the catalog into the product listing shown for a
// category, search, price range and sort order.
package browse

import (
	"slices"
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/category"
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort is a listing order.
type Sort string

const (
	SortDefault   Sort = "default"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortDiscount  Sort = "discount"
	SortNameAsc   Sort = "name_asc"
	SortNameDesc  Sort = "name_desc"
)

// ParseSort maps a raw sort key to a Sort. The empty key is SortDefault.
func ParseSort(raw string) (Sort, bool) {
	switch s := Sort(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return SortDefault, true
	case SortDefault, SortPriceAsc, SortPriceDesc, SortDiscount, SortNameAsc, SortNameDesc:
		return s, true
	}
	return "", false
}

const (
	// NovidadesFallback is how many products the novidades listing shows when
	// no product id carries the new- prefix.
	NovidadesFallback = 8
	newIDPrefix       = "new-"
)

// EmptyMaxPrice is the upper price bound of an empty listing.
var EmptyMaxPrice = decimal.NewFromInt(500)

// PriceRange is an inclusive range of effective prices.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Equal reports whether both ends match numerically.
func (r PriceRange) Equal(o PriceRange) bool {
	return r.Min.Equal(o.Min) && r.Max.Equal(o.Max)
}

// Contains reports whether price lies within the range, ends included.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Query selects a listing. A nil price end takes its value from the bounds
// of the category and search result, so a half-open range needs no second read.
type Query struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     Sort
}

// Result is a computed listing.
type Result struct {
	Products      []product.Product `json:"products"`
	Count         int               `json:"count"`
	Bounds        PriceRange        `json:"bounds"`
	Range         PriceRange        `json:"range"`
	Sort          Sort              `json:"sort"`
	Title         string            `json:"title"`
	FiltersActive bool              `json:"filtersActive"`
}

// Apply runs the category, search, price and sort stages over all. The input
// slice is never reordered.
func Apply(all []product.Product, q Query) Result {
	v := NewView(all, q.Category, q.Search)
	v.SetEnds(q.MinPrice, q.MaxPrice)
	v.SetSort(q.Sort)
	return v.Result()
}

// CategoryStage keeps the products selected by a category token.
func CategoryStage(all []product.Product, token string) []product.Product {
	switch normalized := category.Normalize(token); normalized {
	case "":
		return slices.Clone(all)
	case category.Off:
		return product.FilterDiscounted(all)
	case category.Novidades:
		marked := keep(all, func(p product.Product) bool { return strings.HasPrefix(p.ID, newIDPrefix) })
		if len(marked) > 0 {
			return marked
		}
		return slices.Clone(all[:min(NovidadesFallback, len(all))])
	case category.Featured:
		return product.FilterFeatured(all)
	default:
		return keep(all, func(p product.Product) bool { return category.Equal(p.Category, normalized) })
	}
}

// SearchStage keeps products whose name, description or category contains
// search, ignoring case. Whitespace runs in search count as one space and a
// blank search keeps everything.
func SearchStage(products []product.Product, search string) []product.Product {
	q := strings.ToLower(collapseSpaces(search))
	if q == "" {
		return products
	}
	return keep(products, func(p product.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	})
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Bounds is [0, ceil(highest effective price)], or [0, 500] for no products.
func Bounds(products []product.Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{Min: decimal.Zero, Max: EmptyMaxPrice}
	}
	highest := product.EffectivePrice(products[0])
	for _, p := range products[1:] {
		highest = decimal.Max(highest, product.EffectivePrice(p))
	}
	return PriceRange{Min: decimal.Zero, Max: highest.Ceil()}
}

// PriceStage keeps products whose effective price lies within r.
func PriceStage(products []product.Product, r PriceRange) []product.Product {
	return keep(products, func(p product.Product) bool {
		return r.Contains(product.EffectivePrice(p))
	})
}

// SortStage returns products ordered by s. Every order is stable and
// SortDefault keeps the incoming order.
func SortStage(products []product.Product, s Sort) []product.Product {
	out := slices.Clone(products)
	switch s {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b product.Product) int {
			return product.EffectivePrice(a).Cmp(product.EffectivePrice(b))
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b product.Product) int {
			return product.EffectivePrice(b).Cmp(product.EffectivePrice(a))
		})
	case SortDiscount:
		slices.SortStableFunc(out, func(a, b product.Product) int {
			return compareFloat(b.Discount, a.Discount)
		})
	case SortNameAsc, SortNameDesc:
		c := collate.New(language.BrazilianPortuguese)
		slices.SortStableFunc(out, func(a, b product.Product) int {
			if s == SortNameDesc {
				return c.CompareString(b.Name, a.Name)
			}
			return c.CompareString(a.Name, b.Name)
		})
	}
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func keep(products []product.Product, fn func(product.Product) bool) []product.Product {
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if fn(p) {
			out = append(out, p)
		}
	}
	return out
}
