// Package textutil normaliza términos de búsqueda: el catálogo tiene títulos
// y autores con acentos ("García Márquez") y la búsqueda debe encontrarlos
// escribiendo "garcia marquez".
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch devuelve el término en minúsculas, sin marcas diacríticas
// y sin espacios sobrantes. Si la transformación falla, devuelve el término
// en minúsculas tal cual.
func NormalizeSearch(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	out, _, err := transform.String(stripMarks, term)
	if err != nil {
		return term
	}
	return out
}
