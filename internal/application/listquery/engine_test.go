package listquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econoarena/inventario-api/internal/application/listquery"
	"github.com/econoarena/inventario-api/internal/domain"
)

type fila struct {
	Nombre    string
	Categoria string
	Stock     int
}

func opciones() listquery.Options[fila] {
	return listquery.Options[fila]{
		SearchFields: func(f fila) []string { return []string{f.Nombre} },
		FilterField:  func(f fila) string { return f.Categoria },
		Sorters: map[string]func(a, b fila) int{
			"stock":  func(a, b fila) int { return a.Stock - b.Stock },
			"nombre": func(a, b fila) int { return compareStr(a.Nombre, b.Nombre) },
		},
	}
}

func compareStr(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Doce productos, orden por stock ascendente, página 1 de tamaño 5:
// llegan los 5 de menor stock, total 12 y 3 páginas.
func TestApply_OrdenPorStockYPaginacion(t *testing.T) {
	stocks := []int{120, 80, 40, 15, 150, 90, 50, 20, 100, 70, 30, 10}
	filas := make([]fila, 0, len(stocks))
	for i, s := range stocks {
		filas = append(filas, fila{Nombre: string(rune('A' + i)), Categoria: "arena", Stock: s})
	}

	res, err := listquery.Apply(filas, listquery.Query{SortKey: "stock", Page: 1, Size: 5}, opciones())
	require.NoError(t, err)

	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	require.Len(t, res.Items, 5)
	got := make([]int, 0, 5)
	for _, f := range res.Items {
		got = append(got, f.Stock)
	}
	assert.Equal(t, []int{10, 15, 20, 30, 40}, got, "deben ser los 5 stocks más bajos en orden ascendente")
}

func TestApply_EntradaVacia(t *testing.T) {
	res, err := listquery.Apply(nil, listquery.Query{Page: 1, Size: 5}, opciones())
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 0, res.TotalPages)
}

func TestApply_SizeInvalido(t *testing.T) {
	_, err := listquery.Apply([]fila{{Nombre: "x"}}, listquery.Query{Page: 1, Size: 0}, opciones())
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	_, err = listquery.Apply([]fila{{Nombre: "x"}}, listquery.Query{Page: 1, Size: -3}, opciones())
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestApply_ClaveDeOrdenDesconocida(t *testing.T) {
	_, err := listquery.Apply([]fila{{Nombre: "x"}}, listquery.Query{SortKey: "precio", Page: 1, Size: 5}, opciones())
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

// Página fuera de rango se ajusta a la última, no es error.
func TestApply_PaginaFueraDeRangoSeAjusta(t *testing.T) {
	filas := []fila{{Nombre: "a"}, {Nombre: "b"}, {Nombre: "c"}}

	res, err := listquery.Apply(filas, listquery.Query{Page: 99, Size: 2}, opciones())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Len(t, res.Items, 1)

	res, err = listquery.Apply(filas, listquery.Query{Page: -4, Size: 2}, opciones())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
}

// La búsqueda ignora mayúsculas y tildes: "almacen" encuentra "Almacén".
func TestApply_BusquedaSinTildesNiCase(t *testing.T) {
	filas := []fila{
		{Nombre: "Almacén Principal", Categoria: "a"},
		{Nombre: "Bodega Norte", Categoria: "a"},
	}

	res, err := listquery.Apply(filas, listquery.Query{Term: "ALMACEN", Page: 1, Size: 5}, opciones())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Almacén Principal", res.Items[0].Nombre)
}

func TestApply_FiltroExactoYTerminoCombinados(t *testing.T) {
	filas := []fila{
		{Nombre: "Arena Fina 5 kg", Categoria: "fina"},
		{Nombre: "Arena Fina 10 kg", Categoria: "fina"},
		{Nombre: "Arena Perlada 5 kg", Categoria: "perlada"},
	}

	res, err := listquery.Apply(filas, listquery.Query{Term: "5 kg", Filter: "fina", Page: 1, Size: 10}, opciones())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Arena Fina 5 kg", res.Items[0].Nombre)
}

// Orden estable: empates conservan el orden de inserción.
func TestApply_OrdenEstableEnEmpates(t *testing.T) {
	filas := []fila{
		{Nombre: "primero", Stock: 5},
		{Nombre: "segundo", Stock: 5},
		{Nombre: "tercero", Stock: 1},
	}

	res, err := listquery.Apply(filas, listquery.Query{SortKey: "stock", Page: 1, Size: 10}, opciones())
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "tercero", res.Items[0].Nombre)
	assert.Equal(t, "primero", res.Items[1].Nombre)
	assert.Equal(t, "segundo", res.Items[2].Nombre)
}

// Idempotencia: aplicar dos veces la misma consulta da lo mismo.
func TestApply_Idempotente(t *testing.T) {
	filas := []fila{
		{Nombre: "b", Stock: 2}, {Nombre: "a", Stock: 1}, {Nombre: "c", Stock: 3},
	}
	q := listquery.Query{SortKey: "stock", Desc: true, Page: 1, Size: 2}

	primero, err := listquery.Apply(filas, q, opciones())
	require.NoError(t, err)
	segundo, err := listquery.Apply(filas, q, opciones())
	require.NoError(t, err)

	assert.Equal(t, primero, segundo)
	assert.Equal(t, 3, primero.Items[0].Stock, "desc debe empezar por el mayor")
}
