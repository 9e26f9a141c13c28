package memory

import (
	"time"

	"github.com/econoarena/inventario-api/internal/domain"
	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// UserRepository repositorio de usuarios en memoria.
type UserRepository struct {
	s *Store
}

// NewUserRepository crea el repositorio sobre el store compartido.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	cp := *user
	cp.Permissions = append([]string(nil), user.Permissions...)
	r.s.users[cp.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userByIDLocked(id), nil
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return r.s.userByIDLocked(u.ID), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	cp.Permissions = append([]string(nil), user.Permissions...)
	r.s.users[cp.ID] = &cp
	return nil
}

func (r *UserRepository) UpdateLastLogin(id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *UserRepository) List() ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.usersLocked(), nil
}
