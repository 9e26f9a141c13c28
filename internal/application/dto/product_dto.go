package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Value       decimal.Decimal `json:"value"`
	Supplier    string          `json:"supplier"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Location    *string          `json:"location"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"min_stock"`
	Value       *decimal.Decimal `json:"value"`
	Supplier    *string          `json:"supplier"`
}

// ProductResponse representación snake_case del producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Value       decimal.Decimal `json:"value"`
	Supplier    string          `json:"supplier"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse mapea la entidad al contrato snake_case.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Location:    p.Location,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Value:       p.Value,
		Supplier:    p.Supplier,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
