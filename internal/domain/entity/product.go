package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Stock es un entero no negativo; se muta solo vía movimientos o edición
// directa (nunca queda por debajo de cero).
type Product struct {
	ID          int64
	SKU         string // único
	Name        string
	Description string
	Category    string
	Location    string
	Stock       int
	MinStock    int
	Value       decimal.Decimal // valor unitario
	Supplier    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// TotalValue devuelve stock * valor unitario.
func (p *Product) TotalValue() decimal.Decimal {
	return p.Value.Mul(decimal.NewFromInt(int64(p.Stock)))
}
