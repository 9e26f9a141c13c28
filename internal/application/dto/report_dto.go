package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReportData datos que recibe el generador del reporte de inventario.
type InventoryReportData struct {
	GeneratedAt   time.Time
	GeneratedBy   string
	Products      []ProductResponse
	TotalProducts int
	TotalStock    int
	TotalValue    decimal.Decimal
	LowStockCount int
}

// MovementsReportData datos del reporte de movimientos por rango de fechas.
type MovementsReportData struct {
	GeneratedAt time.Time
	GeneratedBy string
	From        time.Time
	To          time.Time
	Movements   []MovementResponse
	Entries     int
	Exits       int
}
