package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrTokenExpired       = errors.New("token expirado o inválido")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUnknownProduct     = errors.New("producto no encontrado")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuery       = errors.New("consulta inválida")
)

// InsufficientStockError lleva el stock disponible al momento del rechazo.
// Satisface errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
