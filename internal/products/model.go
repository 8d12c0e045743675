package product

import (
	"github.com/angelmondragon/storefront-backend/internal/category"
	"github.com/shopspring/decimal"
)

// Type is the garment family of a product.
type Type = category.ProductType

const (
	TypeClothing  = category.TypeClothing
	TypeShoes     = category.TypeShoes
	TypeAccessory = category.TypeAccessory
)

// Product is one catalog entry as persisted in the products document.
type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Discount       float64  `json:"discount"`
	ImageURL       string   `json:"imageUrl"`
	Images         []string `json:"images"`
	Category       string   `json:"category"`
	Type           Type     `json:"type"`
	Sizes          []string `json:"sizes"`
	Colors         []string `json:"colors"`
	Stock          int      `json:"stock"`
	Featured       bool     `json:"featured"`
	ShowOnHomepage bool     `json:"showOnHomepage"`
}

var hundred = decimal.NewFromInt(100)

// EffectivePrice is price*(1-discount/100) when discount is positive, else price.
func EffectivePrice(p Product) decimal.Decimal {
	price := decimal.NewFromFloat(p.Price)
	if p.Discount <= 0 {
		return price
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(p.Discount).Div(hundred))
	return price.Mul(factor)
}

// IsDiscounted reports whether the product carries a positive discount.
func IsDiscounted(p Product) bool {
	return p.Discount > 0
}

// Clone returns a copy of p that shares no slices with it.
func Clone(p Product) Product {
	p.Images = cloneStrings(p.Images)
	p.Sizes = cloneStrings(p.Sizes)
	p.Colors = cloneStrings(p.Colors)
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
