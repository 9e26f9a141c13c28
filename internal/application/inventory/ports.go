package inventory

import (
	"context"

	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta fn de forma atómica sobre los repositorios de movimientos
// y productos: o se aplican todas las escrituras de fn o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(movements repository.MovementRepository, products repository.ProductRepository) error) error
}
