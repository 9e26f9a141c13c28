package repository

import (
	"time"

	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// MovementRepository puerto del log de movimientos (append-only).
type MovementRepository interface {
	// Create agrega el movimiento y asigna m.ID.
	Create(m *entity.Movement) error
	List() ([]*entity.Movement, error)
	ListByDateRange(from, to time.Time) ([]*entity.Movement, error)
}
