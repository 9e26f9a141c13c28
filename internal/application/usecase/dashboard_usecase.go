package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// DashboardUseCase agregados para las tarjetas y gráficas del panel.
type DashboardUseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(products repository.ProductRepository, movements repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, movements: movements}
}

// Summary totales de inventario y conteos de movimientos del día.
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummaryResponse, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryResponse{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}
	for _, p := range products {
		out.TotalStock += p.Stock
		out.TotalValue = out.TotalValue.Add(p.TotalValue())
		if p.LowStock() {
			out.LowStockCount++
		}
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := uc.movements.ListByDateRange(start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, m := range today {
		switch m.Type {
		case entity.MovementTypeEntrada:
			out.EntriesToday++
		case entity.MovementTypeSalida:
			out.ExitsToday++
		}
	}
	return out, nil
}

// Categories distribución de productos, stock y valor por categoría,
// ordenada por stock descendente.
func (uc *DashboardUseCase) Categories() ([]dto.CategoryStat, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*dto.CategoryStat)
	order := make([]string, 0)
	for _, p := range products {
		stat, ok := byCategory[p.Category]
		if !ok {
			stat = &dto.CategoryStat{Category: p.Category, Value: decimal.Zero}
			byCategory[p.Category] = stat
			order = append(order, p.Category)
		}
		stat.Products++
		stat.Stock += p.Stock
		stat.Value = stat.Value.Add(p.TotalValue())
	}

	out := make([]dto.CategoryStat, 0, len(order))
	for _, c := range order {
		out = append(out, *byCategory[c])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock > out[j].Stock })
	return out, nil
}

// TopProducts los n productos con más stock, descendente.
func (uc *DashboardUseCase) TopProducts(n int) ([]dto.TopProductStat, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	sorted := make([]*entity.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Stock > sorted[j].Stock })

	if n <= 0 {
		n = 5
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]dto.TopProductStat, 0, n)
	for _, p := range sorted[:n] {
		out = append(out, dto.TopProductStat{ProductID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return out, nil
}
