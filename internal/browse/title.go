package browse

import (
	"unicode"
	"unicode/utf8"

	"github.com/angelmondragon/storefront-backend/internal/category"
)

// Title is the listing heading for a category token and search.
func Title(token, search string) string {
	if search = collapseSpaces(search); search != "" {
		return `Resultados para "` + search + `"`
	}
	switch normalized := category.Normalize(token); normalized {
	case "":
		return "Todos os Produtos"
	case category.Off:
		return "Produtos em Oferta"
	case category.Novidades:
		return "Novidades"
	case category.Featured:
		return "Produtos em Destaque"
	default:
		r, size := utf8.DecodeRuneInString(normalized)
		return string(unicode.ToUpper(r)) + normalized[size:]
	}
}
