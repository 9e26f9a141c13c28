package dto

import (
	"time"

	"github.com/econoarena/inventario-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Type      string `json:"type"` // Entrada | Salida
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// MovementResponse representación snake_case del movimiento.
type MovementResponse struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes,omitempty"`
	Reference   string    `json:"reference,omitempty"`
}

// MovementListResponse listado paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementSummaryResponse conteos del día para las tarjetas del front.
type MovementSummaryResponse struct {
	EntriesToday int `json:"entries_today"`
	ExitsToday   int `json:"exits_today"`
	Total        int `json:"total"`
}

// ToMovementResponse mapea la entidad al contrato snake_case.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		Date:        m.Date,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UserID:      m.UserID,
		UserName:    m.UserName,
		Reason:      m.Reason,
		Notes:       m.Notes,
		Reference:   m.Reference,
	}
}
