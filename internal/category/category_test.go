package category

import (
	"regexp"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Calcados", Calcados},
		{" shoes ", Calcados},
		{"calçados", Calcados},
		{"Accessories", Acessorios},
		{"accessory", Acessorios},
		{"acessorios", Acessorios},
		{"HOMEM", Masculino},
		{"men", Masculino},
		{"Mulher", Feminino},
		{"women", Feminino},
		{"infantil", Kids},
		{"children", Kids},
		{"kid", Kids},
		{"oferta", Off},
		{"Ofertas", Off},
		{"promoção", Off},
		{"sale", Off},
		{"novidade", Novidades},
		{"New Arrivals", Novidades},
		{"new", Novidades},
		{"destaque", Featured},
		{"melhores", Featured},
		{"  Moda Praia ", "moda praia"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"", "Calcados", "SHOES", "Moda Praia", "  Ofertas", "acessórios", "ÇÃO", "new arrivals", "x́"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Moda Praia", "moda-praia"},
		{"Acessórios", "acessorios"},
		{"  Verão   2025 ", "-verao-2025-"},
		{"Calçados & Bolsas!", "calcados--bolsas"},
		{"Nova Categoria", "nova-categoria"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyAlphabetAndIdempotence(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{"Ünïcödé Ståff", "日本語 text", "tab\tand\nnewline", "a--b", "ÀÉÎÕÜ ç", "emoji 🎉 sale", "İstanbul"}
	for _, in := range inputs {
		slug := Slugify(in)
		if !allowed.MatchString(slug) {
			t.Errorf("Slugify(%q) = %q contains characters outside [a-z0-9-]", in, slug)
		}
		if again := Slugify(slug); again != slug {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, slug, again)
		}
	}
}

func TestTypeForAndDefaults(t *testing.T) {
	cases := map[string]ProductType{
		Calcados:   TypeShoes,
		Acessorios: TypeAccessory,
		Feminino:   TypeClothing,
		Masculino:  TypeClothing,
		Kids:       TypeClothing,
	}
	for cat, want := range cases {
		got, ok := TypeFor(cat)
		if !ok || got != want {
			t.Errorf("TypeFor(%q) = %q,%v want %q", cat, got, ok, want)
		}
	}
	if _, ok := TypeFor("moda-praia"); ok {
		t.Error("custom categories do not imply a type")
	}
	if got := DefaultSizes(TypeShoes); len(got) != 5 || got[0] != "38" {
		t.Errorf("unexpected shoe sizes %v", got)
	}
	if got := DefaultSizes(TypeAccessory); len(got) != 1 || got[0] != "Único" {
		t.Errorf("unexpected accessory sizes %v", got)
	}
	if got := DefaultSizes(TypeClothing); len(got) != 3 {
		t.Errorf("unexpected clothing sizes %v", got)
	}
}

func TestBuiltInAndTypes(t *testing.T) {
	for _, c := range []string{Feminino, Calcados, Off, Featured} {
		if !IsBuiltIn(c) {
			t.Errorf("%q should be built in", c)
		}
	}
	if IsBuiltIn(Novidades) {
		t.Error("novidades is not a product category")
	}
	if !TypeShoes.Valid() || ProductType("boots").Valid() {
		t.Error("unexpected product type validity")
	}
}

func TestEqualIgnoresCaseAccentsAndSynonyms(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Calçados", "calcados", true},
		{"shoes", "calçados", true},
		{"Moda Praia", "moda práia", true},
		{"feminino", "masculino", false},
		{"", "", true},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
