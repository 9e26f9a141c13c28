package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, date, product_id, product_name, type, quantity, user_id, user_name, reason, notes, reference`

// MovementRepo bitácora de movimientos sobre PostgreSQL (append-only).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega el asiento y asigna su ID.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (date, product_id, product_name, type, quantity, user_id, user_name, reason, notes, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.Date, m.ProductID, m.ProductName, m.Type, m.Quantity,
		m.UserID, m.UserName, m.Reason, m.Notes, m.Reference,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista la bitácora completa en orden de inserción.
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	return r.list(`SELECT ` + movementColumns + ` FROM movements ORDER BY id`)
}

// ListByDateRange lista los movimientos con fecha en [from, to).
func (r *MovementRepo) ListByDateRange(from, to time.Time) ([]*entity.Movement, error) {
	return r.list(`SELECT `+movementColumns+` FROM movements WHERE date >= $1 AND date < $2 ORDER BY id`, from, to)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.Date, &m.ProductID, &m.ProductName, &m.Type, &m.Quantity,
			&m.UserID, &m.UserName, &m.Reason, &m.Notes, &m.Reference,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
