// Package cart keeps shopping carts as whole documents in the document store.
package cart

import (
	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/shopspring/decimal"
)

// Item is a cart line: the product snapshot taken when it was added plus the
// buyer's choices.
type Item struct {
	product.Product
	Quantity      int    `json:"quantity" validate:"gte=1"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// Identity is the (id, size, color) triple that decides whether two lines merge.
type Identity struct {
	ID    string
	Size  string
	Color string
}

func (i Item) Identity() Identity {
	return Identity{ID: i.ID, Size: i.SelectedSize, Color: i.SelectedColor}
}

// Cart is the stored lines with the total derived on read.
type Cart struct {
	Items []Item          `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// LineTotal is price*(1-discount/100)*quantity.
func LineTotal(i Item) decimal.Decimal {
	price := decimal.NewFromFloat(i.Price)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(i.Discount).Div(hundred))
	return price.Mul(factor).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums LineTotal over items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

func newCart(items []Item) Cart {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return Cart{Items: items, Count: count, Total: Total(items)}
}
