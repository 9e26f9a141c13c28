package repository

import "github.com/econoarena/inventario-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetByID y GetBySKU devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila para la transacción
	// en curso (SELECT FOR UPDATE en postgres; en memoria el lock del store).
	GetForUpdate(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock absoluto del producto (motor de movimientos).
	UpdateStock(id int64, stock int) error
	List() ([]*entity.Product, error)
	Delete(id int64) error
}
