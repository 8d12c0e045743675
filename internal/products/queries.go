package product

import (
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/category"
)

// NewArrivalsCount is how many products the new arrivals shelf shows.
const NewArrivalsCount = 4

// FindByID scans products for an exact id match.
func FindByID(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FilterByCategory keeps products whose category resolves to the same
// normalized category as cat. A blank cat keeps everything.
func FilterByCategory(products []Product, cat string) []Product {
	if strings.TrimSpace(cat) == "" {
		return products
	}
	return filter(products, func(p Product) bool {
		return category.Equal(p.Category, cat)
	})
}

func FilterByType(products []Product, t Type) []Product {
	return filter(products, func(p Product) bool { return p.Type == t })
}

func FilterFeatured(products []Product) []Product {
	return filter(products, func(p Product) bool { return p.Featured })
}

func FilterDiscounted(products []Product) []Product {
	return filter(products, IsDiscounted)
}

// NewArrivals returns the first NewArrivalsCount products in list order.
func NewArrivals(products []Product) []Product {
	if len(products) <= NewArrivalsCount {
		return products
	}
	return products[:NewArrivalsCount]
}

func filter(products []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
