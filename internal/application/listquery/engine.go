// Package listquery implementa el motor genérico de listados: filtro por
// término y por campo exacto, orden estable y paginación con clamp.
// Pipeline fijo: filtrar → ordenar → paginar.
package listquery

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/econoarena/inventario-api/internal/domain"
)

// Query es el valor transitorio con los parámetros del listado.
type Query struct {
	Term    string
	Filter  string // comparación exacta contra FilterField (vacío = sin filtro)
	SortKey string // vacío = orden de inserción
	Desc    bool
	Page    int // 1-based; fuera de rango se ajusta, no es error
	Size    int // <= 0 es ErrInvalidQuery
}

// Result es la página resultante con los conteos.
type Result[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
}

// Options define cómo buscar, filtrar y ordenar registros de tipo T.
type Options[T any] struct {
	// SearchFields devuelve los campos donde aplica el término de búsqueda.
	SearchFields func(T) []string
	// FilterField devuelve el campo comparado contra Query.Filter (nil = sin filtro).
	FilterField func(T) string
	// Sorters compara dos registros por clave de orden (negativo, 0, positivo).
	Sorters map[string]func(a, b T) int
}

// Apply ejecuta la consulta sobre los registros. No muta la entrada y es
// idempotente: la misma consulta produce siempre el mismo resultado.
func Apply[T any](records []T, q Query, opts Options[T]) (Result[T], error) {
	if q.Size <= 0 {
		return Result[T]{}, domain.ErrInvalidQuery
	}
	var cmp func(a, b T) int
	if q.SortKey != "" {
		var ok bool
		cmp, ok = opts.Sorters[q.SortKey]
		if !ok {
			return Result[T]{}, domain.ErrInvalidQuery
		}
	}

	// Filtrar
	term := Normalize(q.Term)
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if term != "" {
			if opts.SearchFields == nil || !matchesTerm(opts.SearchFields(r), term) {
				continue
			}
		}
		if q.Filter != "" && opts.FilterField != nil && opts.FilterField(r) != q.Filter {
			continue
		}
		filtered = append(filtered, r)
	}

	// Ordenar (estable: empates conservan el orden de inserción)
	if cmp != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			if q.Desc {
				return cmp(filtered[i], filtered[j]) > 0
			}
			return cmp(filtered[i], filtered[j]) < 0
		})
	}

	// Paginar con clamp
	total := len(filtered)
	if total == 0 {
		return Result[T]{Items: []T{}, Total: 0, Page: 1, TotalPages: 0}, nil
	}
	totalPages := (total + q.Size - 1) / q.Size
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * q.Size
	end := start + q.Size
	if end > total {
		end = total
	}
	return Result[T]{Items: filtered[start:end], Total: total, Page: page, TotalPages: totalPages}, nil
}

func matchesTerm(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(Normalize(f), term) {
			return true
		}
	}
	return false
}

// foldTransformer descompone, elimina marcas diacríticas y recompone:
// "Almacén" y "almacen" comparan igual.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize deja un string en minúsculas y sin tildes para comparar.
func Normalize(s string) string {
	out, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
