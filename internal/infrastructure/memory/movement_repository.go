package memory

import (
	"time"

	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// MovementRepository bitácora de movimientos en memoria (append-only).
type MovementRepository struct {
	s *Store
}

// NewMovementRepository crea el repositorio sobre el store compartido.
func NewMovementRepository(s *Store) *MovementRepository {
	return &MovementRepository{s: s}
}

func (r *MovementRepository) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return createMovementLocked(r.s, m)
}

func (r *MovementRepository) List() ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.movementsLocked(), nil
}

func (r *MovementRepository) ListByDateRange(from, to time.Time) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return movementsByRangeLocked(r.s, from, to), nil
}

func createMovementLocked(s *Store, m *entity.Movement) error {
	s.nextMovementID++
	m.ID = s.nextMovementID
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

// movementsByRangeLocked devuelve los movimientos con fecha en [from, to).
func movementsByRangeLocked(s *Store, from, to time.Time) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for _, m := range s.movements {
		if !m.Date.Before(from) && m.Date.Before(to) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}
