package repository

import (
	"time"

	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
// GetByID y FindByUsername devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(id int64, at time.Time) error
	List() ([]*entity.User, error)
}
