package memory

import (
	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// ProductRepository repositorio de productos en memoria.
type ProductRepository struct {
	s *Store
}

// NewProductRepository crea el repositorio sobre el store compartido.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

func (r *ProductRepository) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProductID++
	product.ID = r.s.nextProductID
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *ProductRepository) GetByID(id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.productByIDLocked(id), nil
}

// GetForUpdate fuera de transacción equivale a GetByID: el lock exclusivo
// solo existe dentro de TxRunner.Run.
func (r *ProductRepository) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepository) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return r.s.productByIDLocked(p.ID), nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *ProductRepository) UpdateStock(id int64, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *ProductRepository) List() ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.productsLocked(), nil
}

func (r *ProductRepository) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}
