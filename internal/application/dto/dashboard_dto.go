package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse totales para las tarjetas y gráficas del dashboard.
type DashboardSummaryResponse struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
	EntriesToday  int             `json:"entries_today"`
	ExitsToday    int             `json:"exits_today"`
}

// CategoryStat distribución de stock por categoría (gráfica doughnut).
type CategoryStat struct {
	Category string          `json:"category"`
	Products int             `json:"products"`
	Stock    int             `json:"stock"`
	Value    decimal.Decimal `json:"value"`
}

// TopProductStat producto destacado por stock (gráfica de barras).
type TopProductStat struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}
