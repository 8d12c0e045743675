package product

import (
	"math"
	"strconv"
	"strings"
)

// toNumber converts a decoded JSON value the way the storefront always has:
// numeric strings parse, booleans are 0/1, single-element arrays unwrap, and
// anything that is not a finite number becomes 0.
func toNumber(v any) float64 {
	var n float64
	switch typed := v.(type) {
	case float64:
		n = typed
	case bool:
		if typed {
			n = 1
		}
	case string:
		n = parseNumeric(typed)
	case []any:
		switch len(typed) {
		case 0:
			n = 0
		case 1:
			n = toNumber(typed[0])
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return float64(i)
		}
		return 0
	}
	if strings.Contains(s, "_") {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// truthy mirrors boolean coercion of a decoded JSON value.
func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case float64:
		return typed != 0 && !math.IsNaN(typed)
	case string:
		return typed != ""
	default:
		return true
	}
}

func toString(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

func toStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, toString(item))
	}
	return out
}

// coerceProduct builds a Product from one decoded catalog entry.
func coerceProduct(raw map[string]any) Product {
	return Product{
		ID:             toString(raw["id"]),
		Name:           toString(raw["name"]),
		Description:    toString(raw["description"]),
		Price:          toNumber(raw["price"]),
		Discount:       toNumber(raw["discount"]),
		ImageURL:       toString(raw["imageUrl"]),
		Images:         toStrings(raw["images"]),
		Category:       toString(raw["category"]),
		Type:           Type(toString(raw["type"])),
		Sizes:          toStrings(raw["sizes"]),
		Colors:         toStrings(raw["colors"]),
		Stock:          int(math.Trunc(toNumber(raw["stock"]))),
		Featured:       truthy(raw["featured"]),
		ShowOnHomepage: truthy(raw["showOnHomepage"]),
	}
}
