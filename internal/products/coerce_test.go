package product

import (
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"number", 12.5, 12.5},
		{"numeric string", " 42.10 ", 42.10},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"hex", "0x10", 16},
		{"true", true, 1},
		{"false", false, 0},
		{"null", nil, 0},
		{"single element array", []any{"7"}, 7},
		{"long array", []any{1.0, 2.0}, 0},
		{"object", map[string]any{"a": 1.0}, 0},
		{"nan", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"infinity string", "Infinity", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := toNumber(tc.in); got != tc.want {
				t.Fatalf("toNumber(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	truthyValues := []any{true, 1.0, "no", []any{}, map[string]any{}}
	for _, v := range truthyValues {
		if !truthy(v) {
			t.Fatalf("expected %v to be truthy", v)
		}
	}
	falsyValues := []any{nil, false, 0.0, "", math.NaN()}
	for _, v := range falsyValues {
		if truthy(v) {
			t.Fatalf("expected %v to be falsy", v)
		}
	}
}

func TestCoerceProduct(t *testing.T) {
	p := coerceProduct(map[string]any{
		"id":             "x1",
		"name":           "Camiseta",
		"price":          "59.9",
		"discount":       "ten",
		"stock":          7.9,
		"featured":       "yes",
		"showOnHomepage": 0.0,
		"sizes":          []any{"P", nil, 38.0},
		"type":           "clothing",
	})

	if p.ID != "x1" || p.Name != "Camiseta" || p.Type != TypeClothing {
		t.Fatalf("unexpected identity fields: %+v", p)
	}
	if p.Price != 59.9 || p.Discount != 0 || p.Stock != 7 {
		t.Fatalf("unexpected numbers: price=%v discount=%v stock=%v", p.Price, p.Discount, p.Stock)
	}
	if !p.Featured || p.ShowOnHomepage {
		t.Fatalf("unexpected flags: featured=%v showOnHomepage=%v", p.Featured, p.ShowOnHomepage)
	}
	if len(p.Sizes) != 2 || p.Sizes[1] != "38" {
		t.Fatalf("unexpected sizes %v", p.Sizes)
	}
	if p.Images == nil || p.Colors == nil {
		t.Fatal("missing lists should decode as empty slices")
	}
}
