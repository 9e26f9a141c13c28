// Package memory implementa la persistencia en memoria con datos semilla
// (modo demo, sin base de datos). Un único RWMutex protege todo el estado;
// las transacciones toman el lock exclusivo y restauran un snapshot si fallan.
package memory

import (
	"sort"
	"sync"

	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	users     map[int64]*entity.User
	products  map[int64]*entity.Product
	movements []*entity.Movement

	nextUserID     int64
	nextProductID  int64
	nextMovementID int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*entity.User),
		products: make(map[int64]*entity.Product),
	}
}

// ── Operaciones internas (el caller debe sostener el lock) ───────────────────

func (s *Store) userByIDLocked(id int64) *entity.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	cp := *u
	cp.Permissions = append([]string(nil), u.Permissions...)
	return &cp
}

func (s *Store) productByIDLocked(id int64) *entity.Product {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (s *Store) productsLocked() []*entity.Product {
	out := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) usersLocked() []*entity.User {
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		cp.Permissions = append([]string(nil), u.Permissions...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) movementsLocked() []*entity.Movement {
	out := make([]*entity.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out
}

// snapshotLocked copia el estado mutable por transacciones (productos y
// bitácora; los usuarios no participan en transacciones).
func (s *Store) snapshotLocked() storeSnapshot {
	products := make(map[int64]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	return storeSnapshot{
		products:       products,
		movements:      append([]*entity.Movement(nil), s.movements...),
		nextMovementID: s.nextMovementID,
	}
}

func (s *Store) restoreLocked(snap storeSnapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.nextMovementID = snap.nextMovementID
}

type storeSnapshot struct {
	products       map[int64]*entity.Product
	movements      []*entity.Movement
	nextMovementID int64
}
