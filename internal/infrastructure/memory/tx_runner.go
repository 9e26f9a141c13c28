package memory

import (
	"context"
	"time"

	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/entity"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta fn bajo el lock exclusivo del store. Si fn falla se
// restaura el snapshot previo: ninguna escritura parcial sobrevive.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner transaccional sobre el store compartido.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) Run(ctx context.Context, fn func(movements repository.MovementRepository, products repository.ProductRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snap := t.s.snapshotLocked()
	if err := fn(&txMovementRepo{s: t.s}, &txProductRepo{s: t.s}); err != nil {
		t.s.restoreLocked(snap)
		return err
	}
	return nil
}

// Variantes sin lock: el runner ya sostiene el exclusivo.

type txProductRepo struct{ s *Store }

func (r *txProductRepo) Create(p *entity.Product) error {
	r.s.nextProductID++
	p.ID = r.s.nextProductID
	cp := *p
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *txProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.s.productByIDLocked(id), nil
}

func (r *txProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.s.productByIDLocked(id), nil
}

func (r *txProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return r.s.productByIDLocked(p.ID), nil
		}
	}
	return nil, nil
}

func (r *txProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *txProductRepo) UpdateStock(id int64, stock int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *txProductRepo) List() ([]*entity.Product, error) {
	return r.s.productsLocked(), nil
}

func (r *txProductRepo) Delete(id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

type txMovementRepo struct{ s *Store }

func (r *txMovementRepo) Create(m *entity.Movement) error {
	return createMovementLocked(r.s, m)
}

func (r *txMovementRepo) List() ([]*entity.Movement, error) {
	return r.s.movementsLocked(), nil
}

func (r *txMovementRepo) ListByDateRange(from, to time.Time) ([]*entity.Movement, error) {
	return movementsByRangeLocked(r.s, from, to), nil
}
