// Package category canonicalizes free-text category strings into the storefront
// vocabulary and derives URL-safe slugs from labels.
package category

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical category tokens.
const (
	Feminino   = "feminino"
	Masculino  = "masculino"
	Kids       = "kids"
	Acessorios = "acessórios"
	Calcados   = "calçados"
	Off        = "off"
	Novidades  = "novidades"
	Featured   = "featured"
)

// ProductType is the garment family a category implies.
type ProductType string

const (
	TypeClothing  ProductType = "clothing"
	TypeShoes     ProductType = "shoes"
	TypeAccessory ProductType = "accessory"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case TypeClothing, TypeShoes, TypeAccessory:
		return true
	}
	return false
}

// BuiltIn lists the categories a product may be filed under without a custom link.
var BuiltIn = []string{Feminino, Masculino, Kids, Acessorios, Calcados, Featured, Off}

var synonyms = map[string]string{
	"calcados":     Calcados,
	"calçados":     Calcados,
	"shoes":        Calcados,
	"acessorios":   Acessorios,
	"acessórios":   Acessorios,
	"accessories":  Acessorios,
	"accessory":    Acessorios,
	"masculino":    Masculino,
	"men":          Masculino,
	"homem":        Masculino,
	"feminino":     Feminino,
	"women":        Feminino,
	"mulher":       Feminino,
	"infantil":     Kids,
	"children":     Kids,
	"kids":         Kids,
	"kid":          Kids,
	"oferta":       Off,
	"ofertas":      Off,
	"promoção":     Off,
	"off":          Off,
	"sale":         Off,
	"novidade":     Novidades,
	"novidades":    Novidades,
	"new":          Novidades,
	"new arrivals": Novidades,
	"destaque":     Featured,
	"destaques":    Featured,
	"featured":     Featured,
	"melhores":     Featured,
}

// Normalize trims and lowercases raw and resolves known synonyms. Unknown
// values pass through trimmed and lowercased.
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}
	if canonical, ok := synonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// Equal reports whether two raw category strings resolve to the same category,
// ignoring case and accents.
func Equal(a, b string) bool {
	return StripAccents(Normalize(a)) == StripAccents(Normalize(b))
}

// IsBuiltIn reports whether normalized is one of BuiltIn.
func IsBuiltIn(normalized string) bool {
	for _, c := range BuiltIn {
		if c == normalized {
			return true
		}
	}
	return false
}

// TypeFor returns the product type a normalized category requires, if any.
func TypeFor(normalized string) (ProductType, bool) {
	switch normalized {
	case Calcados:
		return TypeShoes, true
	case Acessorios:
		return TypeAccessory, true
	case Feminino, Masculino, Kids:
		return TypeClothing, true
	}
	return "", false
}

// DefaultSizes returns the size grid offered for a product type.
func DefaultSizes(t ProductType) []string {
	switch t {
	case TypeShoes:
		return []string{"38", "39", "40", "41", "42"}
	case TypeAccessory:
		return []string{"Único"}
	default:
		return []string{"P", "M", "G"}
	}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugUnsafeRe = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify lowercases label, strips diacritics, turns whitespace runs into
// hyphens and drops anything outside [a-z0-9-].
func Slugify(label string) string {
	folded := stripMarks(strings.ToLower(label))
	folded = whitespaceRe.ReplaceAllString(folded, "-")
	return slugUnsafeRe.ReplaceAllString(folded, "")
}

// StripAccents lowercases s and removes combining marks.
func StripAccents(s string) string {
	return stripMarks(strings.ToLower(s))
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
