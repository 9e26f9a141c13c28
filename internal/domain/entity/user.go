package entity

import (
	"time"

	"github.com/econoarena/inventario-api/internal/domain/access"
)

// User representa un usuario del sistema.
// Permissions guarda la lista efectiva de capacidades; el rol admin las
// ignora (bypass en el evaluador de permisos).
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt, nunca en claro después de sembrar
	Role         access.Role
	IsActive     bool
	LastLogin    *time.Time
	Permissions  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve nombre y apellido para mostrar.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
