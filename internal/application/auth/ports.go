package auth

import "github.com/econoarena/inventario-api/internal/application/dto"

// PersistedSession es el registro {user, permissions, token} que se guarda en
// el almacenamiento local del cliente y se relee al arrancar.
type PersistedSession struct {
	User         *dto.UserResponse `json:"user"`
	Permissions  []string          `json:"permissions"`
	Token        string            `json:"token"`
	RefreshToken string            `json:"refresh_token,omitempty"`
}

// SessionStore puerto de persistencia local de la sesión.
// Load devuelve (nil, nil) si no hay sesión guardada o si el registro está
// malformado (se descarta en silencio).
type SessionStore interface {
	Save(s PersistedSession) error
	Load() (*PersistedSession, error)
	Clear() error
}
